package mastery

import (
	"context"
	"testing"

	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/store"
)

// Recording answers through the store and re-reading the snapshot is how
// every caller drives the engine.
func TestLearnedAfterThirdCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	ps := progress.NewStore(store.NewMemoryKV())
	cat := testCatalog()

	for _, id := range []string{"basics", "demand", "supply"} {
		for range 3 {
			ps.RecordAnswer(ctx, id, true)
		}
	}

	eq := cat.MustGet("equilibrium")
	e := New(cat, ps.Snapshot(ctx))
	if st := e.PrerequisitesMet(eq); !st.Met {
		t.Fatalf("equilibrium blocked by %v", ids(st.Missing))
	}
	if e.IsLearned(eq.ID) {
		t.Fatal("equilibrium learned before any attempt")
	}

	for i := 1; i <= 3; i++ {
		p := ps.RecordAnswer(ctx, eq.ID, true)
		e = New(cat, ps.Snapshot(ctx))

		want := i == 3
		if got := e.IsLearned(eq.ID); got != want {
			t.Errorf("after answer %d: learned = %v, want %v", i, got, want)
		}
		if p.Attempts != i || p.Correct != i || p.Confidence != 100 {
			t.Errorf("after answer %d: got %+v", i, p)
		}
	}

	if !e.IsAvailable(cat.MustGet("elasticity")) {
		t.Error("elasticity should unlock once equilibrium is learned")
	}
}
