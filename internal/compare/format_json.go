package compare

import (
	"github.com/rgehrsitz/medplan/internal/output"
)

// JSONFormatter renders a ComparisonSet as JSON, with the same layout as the
// report and break-even JSON outputs
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := output.MarshalJSON(compSet, jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
