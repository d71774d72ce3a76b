package mastery

import (
	"testing"

	"github.com/abhisek/econiz/internal/progress"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		attempts, confidence int
		want                 Status
	}{
		{0, 0, StatusNotAttempted},
		{1, 100, StatusMastered},
		{10, 70, StatusMastered},
		{10, 69, StatusLearning},
		{10, 40, StatusLearning},
		{10, 39, StatusStruggling},
		{3, 0, StatusStruggling},
	}
	for _, tt := range tests {
		if got := Classify(tt.attempts, tt.confidence); got != tt.want {
			t.Errorf("Classify(%d, %d) = %q, want %q", tt.attempts, tt.confidence, got, tt.want)
		}
	}
}

func TestMasteryLevel_Descriptors(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{
		"basics": rec(3, 3),
		"demand": rec(2, 1),
		"supply": rec(3, 1),
	})

	tests := []struct {
		id    string
		label string
		color string
	}{
		{"basics", "Mastered", "#22c55e"},
		{"demand", "Learning", "#eab308"},
		{"supply", "Needs Practice", "#ef4444"},
		{"trade", "Not Attempted", "#9ca3af"},
	}
	for _, tt := range tests {
		l := e.MasteryLevel(tt.id)
		if l.Label != tt.label || l.Color != tt.color {
			t.Errorf("MasteryLevel(%q) = %+v, want %s %s", tt.id, l, tt.label, tt.color)
		}
	}
}

func TestMasteredDisplayIsNotLearned(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{"basics": rec(2, 2)})
	if e.MasteryLevel("basics").Level != StatusMastered {
		t.Error("expected mastered display level")
	}
	if e.IsLearned("basics") {
		t.Error("two attempts should not count as learned")
	}
}

func TestConceptsByStatus(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{
		"basics": rec(3, 3),
		"demand": rec(2, 1),
		"supply": rec(3, 1),
		"ghost":  rec(9, 9),
	})
	b := e.ConceptsByStatus()
	if got := ids(b.Mastered); !equalIDs(got, []string{"basics"}) {
		t.Errorf("mastered = %v", got)
	}
	if got := ids(b.Learning); !equalIDs(got, []string{"demand"}) {
		t.Errorf("learning = %v", got)
	}
	if got := ids(b.Struggling); !equalIDs(got, []string{"supply"}) {
		t.Errorf("struggling = %v", got)
	}
	if got := ids(b.NotStarted); !equalIDs(got, []string{"equilibrium", "elasticity", "trade"}) {
		t.Errorf("notStarted = %v", got)
	}
}
