package mastery

import "github.com/abhisek/econiz/internal/catalog"

// PrereqStatus is the gating result for one concept.
type PrereqStatus struct {
	Met     bool              `json:"met"`
	Missing []catalog.Concept `json:"missing"`
}

// PrerequisitesMet checks the direct prerequisites of c. Missing lists the
// unlearned ones in listed order; IDs absent from the catalog are skipped.
// Indirect prerequisites are not consulted.
func (e *Engine) PrerequisitesMet(c catalog.Concept) PrereqStatus {
	missing := []catalog.Concept{}
	for _, prereqID := range c.Prerequisites {
		if e.IsLearned(prereqID) {
			continue
		}
		if p, ok := e.catalog.Get(prereqID); ok {
			missing = append(missing, p)
		}
	}
	return PrereqStatus{Met: len(missing) == 0, Missing: missing}
}

// IsAvailable reports whether c can be practiced now.
func (e *Engine) IsAvailable(c catalog.Concept) bool {
	return e.PrerequisitesMet(c).Met
}

// Available returns every available concept in catalog order.
func (e *Engine) Available() []catalog.Concept {
	var result []catalog.Concept
	for _, c := range e.catalog.All() {
		if e.IsAvailable(c) {
			result = append(result, c)
		}
	}
	return result
}

type chainFrame struct {
	concept catalog.Concept
	next    int
}

// PrerequisiteChain returns every transitive prerequisite of c, deepest
// first: for each direct prerequisite in listed order, its own chain is
// emitted before it. Each concept appears at most once and c itself never
// appears, even when the catalog contains a cycle back to it.
func (e *Engine) PrerequisiteChain(c catalog.Concept) []catalog.Concept {
	visited := map[string]bool{c.ID: true}
	chain := []catalog.Concept{}
	stack := []*chainFrame{{concept: c}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.concept.Prerequisites) {
			prereqID := top.concept.Prerequisites[top.next]
			top.next++
			if visited[prereqID] {
				continue
			}
			p, ok := e.catalog.Get(prereqID)
			if !ok {
				continue
			}
			visited[prereqID] = true
			stack = append(stack, &chainFrame{concept: p})
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			chain = append(chain, top.concept)
		}
	}
	return chain
}
