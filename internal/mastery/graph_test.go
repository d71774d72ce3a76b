package mastery

import (
	"testing"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

func TestDependencyGraph(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{"basics": rec(3, 3), "demand": rec(1, 0)})
	g := e.DependencyGraph()

	if len(g.Nodes) != 6 {
		t.Errorf("got %d nodes, want 6", len(g.Nodes))
	}
	if len(g.Edges) != 6 {
		t.Errorf("got %d edges, want 6", len(g.Edges))
	}

	nodes := make(map[string]GraphNode)
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}
	if n := nodes["basics"]; !n.Learned || n.Color != "#22c55e" {
		t.Errorf("basics node = %+v", n)
	}
	if n := nodes["demand"]; n.Attempts != 1 || n.Level != StatusStruggling || !n.Available {
		t.Errorf("demand node = %+v", n)
	}
	if n := nodes["equilibrium"]; n.Available {
		t.Error("equilibrium should not be available")
	}

	found := false
	for _, edge := range g.Edges {
		if edge.From == "supply" && edge.To == "equilibrium" {
			found = true
		}
	}
	if !found {
		t.Error("missing edge supply -> equilibrium")
	}
}

func TestDependencyGraph_SkipsUnknownPrereqs(t *testing.T) {
	cat := catalog.New([]catalog.Concept{{ID: "a", Prerequisites: []string{"ghost"}}})
	g := New(cat, nil).DependencyGraph()
	if len(g.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(g.Edges))
	}
}

func TestLearnedConceptNames(t *testing.T) {
	e := New(testCatalog(), progress.Snapshot{
		"supply": rec(3, 3),
		"basics": rec(5, 4),
		"demand": rec(3, 2),
	})
	got := e.LearnedConceptNames()
	if !equalIDs(got, []string{"Basics", "Supply"}) {
		t.Errorf("got %v, want [Basics Supply]", got)
	}
}
