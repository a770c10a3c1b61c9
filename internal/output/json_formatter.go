package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/medplan/internal/domain"
)

// MarshalJSON encodes v, indented by two spaces when pretty is set
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// JSONFormatter marshals the full report
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return MarshalJSON(report, j.Pretty)
}
