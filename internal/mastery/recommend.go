package mastery

import (
	"slices"

	"github.com/abhisek/econiz/internal/catalog"
)

// FindWeakestConcept picks the concept most in need of practice among the
// available ones, in three tiers:
//  1. attempted but not learned, lowest confidence first
//  2. never attempted, lowest difficulty first
//  3. anything available, lowest confidence first
//
// Ties keep catalog order. It returns false only when nothing is available.
func (e *Engine) FindWeakestConcept() (catalog.Concept, bool) {
	available := e.Available()
	if len(available) == 0 {
		return catalog.Concept{}, false
	}

	var struggling, unattempted []catalog.Concept
	for _, c := range available {
		p := e.Progress(c.ID)
		switch {
		case p.Attempts == 0:
			unattempted = append(unattempted, c)
		case !p.IsLearned():
			struggling = append(struggling, c)
		}
	}

	byConfidence := func(a, b catalog.Concept) int {
		return e.Progress(a.ID).Confidence - e.Progress(b.ID).Confidence
	}

	if len(struggling) > 0 {
		slices.SortStableFunc(struggling, byConfidence)
		return struggling[0], true
	}

	if len(unattempted) > 0 {
		slices.SortStableFunc(unattempted, func(a, b catalog.Concept) int {
			return a.Difficulty - b.Difficulty
		})
		return unattempted[0], true
	}

	slices.SortStableFunc(available, byConfidence)
	return available[0], true
}

// RecommendedConcept returns the next concept on the learning path: an
// available, unlearned concept, preferring ones already started and then
// lower difficulty. Ties keep catalog order.
func (e *Engine) RecommendedConcept() (catalog.Concept, bool) {
	var ready []catalog.Concept
	for _, c := range e.Available() {
		if !e.IsLearned(c.ID) {
			ready = append(ready, c)
		}
	}
	if len(ready) == 0 {
		return catalog.Concept{}, false
	}

	slices.SortStableFunc(ready, func(a, b catalog.Concept) int {
		as, bs := e.Progress(a.ID).Started(), e.Progress(b.ID).Started()
		if as != bs {
			if as {
				return -1
			}
			return 1
		}
		return a.Difficulty - b.Difficulty
	})
	return ready[0], true
}
