package project

// Phases is the fixed ordered list of construction milestones. Scope
// progress consumes them one per successful month.
var Phases = [...]string{
	"Site mobilisation and contractor selection",
	"Excavation and shoring",
	"Foundations",
	"Structure: floors 1-2",
	"Structure: floors 3-4 (initial services)",
	"Structure: floors 5-6 (snow risk)",
	"Structure: floors 7-8",
	"Roof and penthouse",
	"Masonry and rough works",
	"Mechanical services (chiller/package procurement)",
	"Electrical services (switchboards/cabling)",
	"Rough-works quality control",
	"Finishing 1 (lighting/drywall)",
	"Finishing 2 (cabinetry/flooring)",
	"Finishing 3 (sanitary)",
	"Landscaping and green space",
	"Services testing and commissioning (chiller/water)",
	"Final handover and snagging",
}

// PhaseCount is the number of named phases
const PhaseCount = len(Phases)

// PhaseName returns the phase at index i, or a generic label when i is
// outside the table.
func PhaseName(i int) string {
	if i < 0 || i >= PhaseCount {
		return "final phase"
	}
	return Phases[i]
}
