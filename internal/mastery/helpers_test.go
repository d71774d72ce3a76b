package mastery

import (
	"time"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

// testCatalog is a small DAG:
//
//	basics -> demand -> equilibrium -> elasticity
//	basics -> supply -> equilibrium
//	basics -> trade
func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Concept{
		{ID: "basics", Name: "Basics", Unit: catalog.UnitMicro, Difficulty: 1},
		{ID: "demand", Name: "Demand", Unit: catalog.UnitMicro, Difficulty: 2, Prerequisites: []string{"basics"}},
		{ID: "supply", Name: "Supply", Unit: catalog.UnitMicro, Difficulty: 1, Prerequisites: []string{"basics"}},
		{ID: "equilibrium", Name: "Equilibrium", Unit: catalog.UnitMicro, Difficulty: 3, Prerequisites: []string{"demand", "supply"}},
		{ID: "elasticity", Name: "Elasticity", Unit: catalog.UnitMicro, Difficulty: 4, Prerequisites: []string{"equilibrium"}},
		{ID: "trade", Name: "Trade", Unit: catalog.UnitInternational, Difficulty: 3, Prerequisites: []string{"basics"}},
	})
}

// rec builds a progress record with derived confidence.
func rec(attempts, correct int) progress.ConceptProgress {
	return progress.ConceptProgress{
		Attempts:   attempts,
		Correct:    correct,
		Confidence: progress.Confidence(correct, attempts),
	}
}

// recAt is rec with a last-attempt timestamp.
func recAt(attempts, correct int, at time.Time) progress.ConceptProgress {
	p := rec(attempts, correct)
	p.LastAttempt = &at
	return p
}

func ids(concepts []catalog.Concept) []string {
	out := make([]string, len(concepts))
	for i, c := range concepts {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
