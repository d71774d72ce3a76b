package catalog

// Unit is an IB Economics syllabus unit.
type Unit string

const (
	UnitMicro         Unit = "microeconomics"
	UnitMacro         Unit = "macroeconomics"
	UnitInternational Unit = "international_economics"
)

// AllUnits returns all units in syllabus order.
func AllUnits() []Unit {
	return []Unit{UnitMicro, UnitMacro, UnitInternational}
}

// UnitDisplayName returns a human-readable name for a unit.
func UnitDisplayName(u Unit) string {
	switch u {
	case UnitMicro:
		return "Microeconomics"
	case UnitMacro:
		return "Macroeconomics"
	case UnitInternational:
		return "International Economics"
	default:
		return string(u)
	}
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	switch u {
	case UnitMicro, UnitMacro, UnitInternational:
		return true
	}
	return false
}

// Difficulty bounds for a concept.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Concept is a single node of the curriculum.
type Concept struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Unit                 Unit     `json:"unit"`
	Description          string   `json:"description"`
	Difficulty           int      `json:"difficulty"`
	Prerequisites        []string `json:"prerequisites"`
	CommandTerms         []string `json:"ib_command_terms"`
	CommonMisconceptions []string `json:"common_misconceptions"`
	KeyDiagrams          []string `json:"key_diagrams,omitempty"`
}
