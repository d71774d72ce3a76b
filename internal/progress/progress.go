// Package progress persists per-concept answer records and the recent
// question history for a single learner.
package progress

import (
	"math"
	"slices"
	"time"
)

const (
	// MaxOutcomes bounds the per-concept outcome ring.
	MaxOutcomes = 20

	// LearnedMinAttempts and LearnedMinConfidence define a learned concept.
	LearnedMinAttempts   = 3
	LearnedMinConfidence = 70
)

// Outcome is one recorded answer.
type Outcome struct {
	Timestamp time.Time `json:"timestamp"`
	Correct   bool      `json:"correct"`
}

// ConceptProgress is the learner's record for one concept. The zero value
// is the default for a never-attempted concept.
type ConceptProgress struct {
	Attempts    int        `json:"attempts"`
	Correct     int        `json:"correct"`
	Confidence  int        `json:"confidence"`
	LastAttempt *time.Time `json:"lastAttempt"`
	History     []Outcome  `json:"history"`
}

// Confidence returns round(correct/attempts*100), or 0 with no attempts.
func Confidence(correct, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(attempts) * 100))
}

// Record returns a copy of p with one more answer applied.
func (p ConceptProgress) Record(correct bool, at time.Time) ConceptProgress {
	next := ConceptProgress{
		Attempts: p.Attempts + 1,
		Correct:  p.Correct,
	}
	if correct {
		next.Correct++
	}
	next.Confidence = Confidence(next.Correct, next.Attempts)

	ts := at
	next.LastAttempt = &ts

	history := append(slices.Clone(p.History), Outcome{Timestamp: at, Correct: correct})
	if len(history) > MaxOutcomes {
		history = history[len(history)-MaxOutcomes:]
	}
	next.History = history
	return next
}

// IsLearned reports attempts >= 3 and confidence >= 70.
func (p ConceptProgress) IsLearned() bool {
	return p.Attempts >= LearnedMinAttempts && p.Confidence >= LearnedMinConfidence
}

// Started reports whether the concept has been attempted at all.
func (p ConceptProgress) Started() bool {
	return p.Attempts > 0
}

// Snapshot maps concept IDs to progress records.
type Snapshot map[string]ConceptProgress

// Get returns the record for id, or the zero default.
func (s Snapshot) Get(id string) ConceptProgress {
	if s == nil {
		return ConceptProgress{}
	}
	return s[id]
}
