package progress

import (
	"testing"
	"time"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		correct, attempts, want int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{1, 1, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{5, 8, 63}, // 62.5
		{7, 10, 70},
	}
	for _, tt := range tests {
		if got := Confidence(tt.correct, tt.attempts); got != tt.want {
			t.Errorf("Confidence(%d, %d) = %d, want %d", tt.correct, tt.attempts, got, tt.want)
		}
	}
}

func TestRecord_Counts(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	var p ConceptProgress

	p = p.Record(true, at)
	p = p.Record(false, at.Add(time.Minute))
	p = p.Record(true, at.Add(2*time.Minute))

	if p.Attempts != 3 {
		t.Errorf("got attempts %d, want 3", p.Attempts)
	}
	if p.Correct != 2 {
		t.Errorf("got correct %d, want 2", p.Correct)
	}
	if p.Confidence != 67 {
		t.Errorf("got confidence %d, want 67", p.Confidence)
	}
	if p.LastAttempt == nil || !p.LastAttempt.Equal(at.Add(2*time.Minute)) {
		t.Errorf("got lastAttempt %v, want %v", p.LastAttempt, at.Add(2*time.Minute))
	}
	if len(p.History) != 3 {
		t.Fatalf("got %d history entries, want 3", len(p.History))
	}
	if p.History[1].Correct {
		t.Error("expected second outcome to be incorrect")
	}
}

func TestRecord_DoesNotMutateReceiver(t *testing.T) {
	at := time.Now()
	base := ConceptProgress{}.Record(true, at)
	_ = base.Record(false, at)

	if base.Attempts != 1 || len(base.History) != 1 {
		t.Errorf("receiver mutated: attempts=%d history=%d", base.Attempts, len(base.History))
	}
}

func TestRecord_HistoryRingEvictsOldest(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var p ConceptProgress
	for i := 0; i < 25; i++ {
		p = p.Record(i%2 == 0, start.Add(time.Duration(i)*time.Minute))
	}

	if len(p.History) != MaxOutcomes {
		t.Fatalf("got %d outcomes, want %d", len(p.History), MaxOutcomes)
	}
	if !p.History[0].Timestamp.Equal(start.Add(5 * time.Minute)) {
		t.Errorf("oldest kept outcome at %v, want %v", p.History[0].Timestamp, start.Add(5*time.Minute))
	}
	if !p.History[MaxOutcomes-1].Timestamp.Equal(start.Add(24 * time.Minute)) {
		t.Errorf("newest outcome at %v, want %v", p.History[MaxOutcomes-1].Timestamp, start.Add(24*time.Minute))
	}
	if p.Attempts != 25 {
		t.Errorf("got attempts %d, want 25", p.Attempts)
	}
}

func TestRecord_Invariants(t *testing.T) {
	at := time.Now()
	var p ConceptProgress
	for i := 0; i < 50; i++ {
		p = p.Record(i%3 != 0, at)
		if p.Correct > p.Attempts {
			t.Fatalf("correct %d > attempts %d", p.Correct, p.Attempts)
		}
		if p.Confidence < 0 || p.Confidence > 100 {
			t.Fatalf("confidence %d out of range", p.Confidence)
		}
		if p.Confidence != Confidence(p.Correct, p.Attempts) {
			t.Fatalf("confidence %d not recomputed from counts", p.Confidence)
		}
	}
}

func TestIsLearned(t *testing.T) {
	tests := []struct {
		name string
		p    ConceptProgress
		want bool
	}{
		{"never attempted", ConceptProgress{}, false},
		{"two perfect attempts", ConceptProgress{Attempts: 2, Correct: 2, Confidence: 100}, false},
		{"three at 67", ConceptProgress{Attempts: 3, Correct: 2, Confidence: 67}, false},
		{"three perfect", ConceptProgress{Attempts: 3, Correct: 3, Confidence: 100}, true},
		{"ten at 70", ConceptProgress{Attempts: 10, Correct: 7, Confidence: 70}, true},
	}
	for _, tt := range tests {
		if got := tt.p.IsLearned(); got != tt.want {
			t.Errorf("%s: IsLearned() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSnapshotGet_Default(t *testing.T) {
	var snap Snapshot
	p := snap.Get("anything")
	if p.Attempts != 0 || p.LastAttempt != nil || p.History != nil {
		t.Errorf("expected zero default, got %+v", p)
	}
}
