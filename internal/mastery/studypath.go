package mastery

import (
	"slices"

	"github.com/abhisek/econiz/internal/catalog"
)

// UrgentConfidence is the confidence below which a started concept is
// considered urgent in a study plan.
const UrgentConfidence = 50

// StudyPlan spreads the remaining available concepts over the days left
// before an exam.
type StudyPlan struct {
	TotalRemaining int                 `json:"totalRemaining"`
	ConceptsPerDay int                 `json:"conceptsPerDay"`
	DaysNeeded     int                 `json:"daysNeeded"`
	DailyTargets   [][]catalog.Concept `json:"dailyTargets"`
	UrgentConcepts []catalog.Concept   `json:"urgentConcepts"`
}

// StudyPath plans available, unlearned concepts: urgent ones first, then by
// ascending difficulty, chunked into ceil(remaining/days) per day. A
// non-positive daysUntilExam is treated as one day.
func (e *Engine) StudyPath(daysUntilExam int) StudyPlan {
	if daysUntilExam < 1 {
		daysUntilExam = 1
	}

	var remaining []catalog.Concept
	urgent := []catalog.Concept{}
	for _, c := range e.Available() {
		if e.IsLearned(c.ID) {
			continue
		}
		remaining = append(remaining, c)
		if e.isUrgent(c.ID) {
			urgent = append(urgent, c)
		}
	}

	slices.SortStableFunc(remaining, func(a, b catalog.Concept) int {
		au, bu := e.isUrgent(a.ID), e.isUrgent(b.ID)
		if au != bu {
			if au {
				return -1
			}
			return 1
		}
		return a.Difficulty - b.Difficulty
	})

	plan := StudyPlan{
		TotalRemaining: len(remaining),
		DailyTargets:   [][]catalog.Concept{},
		UrgentConcepts: urgent,
	}
	if len(remaining) == 0 {
		return plan
	}

	plan.ConceptsPerDay = (len(remaining) + daysUntilExam - 1) / daysUntilExam
	for chunk := range slices.Chunk(remaining, plan.ConceptsPerDay) {
		plan.DailyTargets = append(plan.DailyTargets, chunk)
	}
	plan.DaysNeeded = len(plan.DailyTargets)
	return plan
}

func (e *Engine) isUrgent(id string) bool {
	p := e.Progress(id)
	return p.Attempts > 0 && p.Confidence < UrgentConfidence
}
