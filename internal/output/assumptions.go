package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"All expenses are in-network; out-of-network costs are not modeled",
	"Expenses above a plan's out-of-pocket maximum are not borne by the family",
	"Expenses billed to the same plan share that plan's out-of-pocket maximum",
	"HSA plans: employee contributes the annual limit minus the employer match, pre-tax",
	"Premiums, deductibles and limits are 2025 annual amounts",
}
