package mastery

import (
	"math"
	"time"
)

// Stats summarizes progress across the catalog.
type Stats struct {
	TotalAttempts     int `json:"totalAttempts"`
	TotalCorrect      int `json:"totalCorrect"`
	OverallAccuracy   int `json:"overallAccuracy"`
	ConceptsAttempted int `json:"conceptsAttempted"`
	ConceptsMastered  int `json:"conceptsMastered"`
	TotalConcepts     int `json:"totalConcepts"`
	ProgressPercent   int `json:"progressPercent"`
}

// OverallStats aggregates over catalog concepts only; progress for IDs not
// in the catalog is ignored.
func (e *Engine) OverallStats() Stats {
	var s Stats
	s.TotalConcepts = e.catalog.Len()

	for _, c := range e.catalog.All() {
		p := e.Progress(c.ID)
		if p.Attempts == 0 {
			continue
		}
		s.TotalAttempts += p.Attempts
		s.TotalCorrect += p.Correct
		s.ConceptsAttempted++
		if p.IsLearned() {
			s.ConceptsMastered++
		}
	}

	s.OverallAccuracy = percent(s.TotalCorrect, s.TotalAttempts)
	s.ProgressPercent = percent(s.ConceptsMastered, s.TotalConcepts)
	return s
}

// Velocity measures how quickly concepts are being learned. The last
// attempt on a learned concept stands in for its mastery date.
type Velocity struct {
	Velocity       float64 `json:"velocity"`
	ConceptsPerDay float64 `json:"conceptsPerDay"`
	DaysActive     int     `json:"daysActive"`
	MasteredCount  int     `json:"masteredCount"`
	ElapsedDays    int     `json:"elapsedDays"`
}

// LearningVelocity reports learned concepts per elapsed day between the
// first and last mastery date (at least one day) and per distinct UTC
// calendar day. Both rates are rounded to two decimals.
func (e *Engine) LearningVelocity() Velocity {
	var dates []time.Time
	for _, c := range e.catalog.All() {
		p := e.Progress(c.ID)
		if p.IsLearned() && p.LastAttempt != nil {
			dates = append(dates, p.LastAttempt.UTC())
		}
	}
	if len(dates) == 0 {
		return Velocity{}
	}

	earliest, latest := dates[0], dates[0]
	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
		days[d.Format(time.DateOnly)] = true
	}

	elapsed := int(math.Ceil(latest.Sub(earliest).Hours() / 24))
	if elapsed < 1 {
		elapsed = 1
	}

	n := len(dates)
	return Velocity{
		Velocity:       round2(float64(n) / float64(elapsed)),
		ConceptsPerDay: round2(float64(n) / float64(len(days))),
		DaysActive:     len(days),
		MasteredCount:  n,
		ElapsedDays:    elapsed,
	}
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
