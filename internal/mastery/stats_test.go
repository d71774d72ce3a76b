package mastery

import (
	"testing"
	"time"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

func TestOverallStats(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{
		"basics": rec(3, 3),
		"demand": rec(2, 1),
		"ghost":  rec(10, 10),
	})
	s := e.OverallStats()

	want := Stats{
		TotalAttempts:     5,
		TotalCorrect:      4,
		OverallAccuracy:   80,
		ConceptsAttempted: 2,
		ConceptsMastered:  1,
		TotalConcepts:     6,
		ProgressPercent:   17,
	}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestOverallStats_Empty(t *testing.T) {
	s := New(catalog.New(nil), progress.Snapshot{"x": rec(3, 3)}).OverallStats()
	if s != (Stats{}) {
		t.Errorf("got %+v, want zero stats", s)
	}
}

func TestLearningVelocity_NoneLearned(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{"basics": rec(2, 2)})
	if v := e.LearningVelocity(); v != (Velocity{}) {
		t.Errorf("got %+v, want zero velocity", v)
	}
}

func TestLearningVelocity(t *testing.T) {
	day1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	e := New(testCatalog(), progress.Snapshot{
		"basics": recAt(3, 3, day1),
		"demand": recAt(4, 3, day1.Add(8*time.Hour)),
		"supply": recAt(3, 3, day1.Add(71*time.Hour)),
		"trade":  recAt(3, 1, day1.Add(200*time.Hour)), // not learned
	})
	v := e.LearningVelocity()

	if v.MasteredCount != 3 {
		t.Errorf("got mastered %d, want 3", v.MasteredCount)
	}
	if v.ElapsedDays != 3 {
		t.Errorf("got elapsed %d, want 3", v.ElapsedDays)
	}
	if v.DaysActive != 2 {
		t.Errorf("got days active %d, want 2", v.DaysActive)
	}
	if v.Velocity != 1 {
		t.Errorf("got velocity %v, want 1", v.Velocity)
	}
	if v.ConceptsPerDay != 1.5 {
		t.Errorf("got concepts/day %v, want 1.5", v.ConceptsPerDay)
	}
}

func TestLearningVelocity_SingleDayMinimum(t *testing.T) {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	e := New(testCatalog(), progress.Snapshot{
		"basics": recAt(3, 3, at),
		"demand": recAt(3, 3, at.Add(time.Minute)),
	})
	v := e.LearningVelocity()
	if v.ElapsedDays != 1 || v.Velocity != 2 || v.ConceptsPerDay != 2 {
		t.Errorf("got %+v, want 1 elapsed day at velocity 2", v)
	}
}

func TestLearningVelocity_DaysAreUTC(t *testing.T) {
	tz := time.FixedZone("UTC-8", -8*3600)
	// Both instants fall on 2026-02-02 in UTC but on different local days.
	a := time.Date(2026, 2, 1, 23, 0, 0, 0, tz)
	b := time.Date(2026, 2, 2, 1, 0, 0, 0, tz)
	e := New(testCatalog(), progress.Snapshot{
		"basics": recAt(3, 3, a),
		"demand": recAt(3, 3, b),
	})
	if got := e.LearningVelocity().DaysActive; got != 1 {
		t.Errorf("got %d days active, want 1", got)
	}
}

func TestLearningVelocity_Rounding(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	e := New(testCatalog(), progress.Snapshot{
		"basics": recAt(3, 3, start),
		"demand": recAt(3, 3, start.Add(24*time.Hour)),
		"supply": recAt(3, 3, start.Add(72*time.Hour)),
	})
	// 3 learned over 3 elapsed days on 3 distinct days.
	v := e.LearningVelocity()
	if v.Velocity != 1 || v.ConceptsPerDay != 1 {
		t.Errorf("got %+v", v)
	}

	e = New(testCatalog(), progress.Snapshot{
		"basics": recAt(3, 3, start),
		"demand": recAt(3, 3, start.Add(72*time.Hour)),
	})
	if got := e.LearningVelocity().Velocity; got != 0.67 {
		t.Errorf("got velocity %v, want 0.67", got)
	}
}
