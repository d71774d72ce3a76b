package mastery

import "github.com/abhisek/econiz/internal/catalog"

// GraphNode is one concept in the dependency graph.
type GraphNode struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Unit       catalog.Unit `json:"unit"`
	Color      string       `json:"color"`
	Level      Status       `json:"level"`
	Attempts   int          `json:"attempts"`
	Confidence int          `json:"confidence"`
	Learned    bool         `json:"learned"`
	Available  bool         `json:"available"`
}

// GraphEdge points from a prerequisite to the concept that depends on it.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the catalog's prerequisite DAG annotated with progress.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// DependencyGraph builds the annotated graph. Prerequisite IDs missing from
// the catalog produce no edge.
func (e *Engine) DependencyGraph() Graph {
	g := Graph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
	for _, c := range e.catalog.All() {
		p := e.Progress(c.ID)
		level := e.MasteryLevel(c.ID)
		g.Nodes = append(g.Nodes, GraphNode{
			ID:         c.ID,
			Name:       c.Name,
			Unit:       c.Unit,
			Color:      level.Color,
			Level:      level.Level,
			Attempts:   p.Attempts,
			Confidence: p.Confidence,
			Learned:    p.IsLearned(),
			Available:  e.IsAvailable(c),
		})
		for _, prereqID := range c.Prerequisites {
			if _, ok := e.catalog.Get(prereqID); ok {
				g.Edges = append(g.Edges, GraphEdge{From: prereqID, To: c.ID})
			}
		}
	}
	return g
}
