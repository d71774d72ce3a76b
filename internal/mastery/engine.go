// Package mastery derives learning state from a concept catalog and a
// progress snapshot: prerequisite gating, mastery levels, recommendations
// and study analytics. Every function is pure over its inputs.
package mastery

import (
	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

// Engine evaluates a progress snapshot against a catalog.
type Engine struct {
	catalog  *catalog.Catalog
	progress progress.Snapshot
}

// New creates an engine. A nil snapshot behaves as an empty one.
func New(cat *catalog.Catalog, snap progress.Snapshot) *Engine {
	return &Engine{catalog: cat, progress: snap}
}

// Catalog returns the catalog the engine evaluates.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Progress returns the record for id, or a zero default.
func (e *Engine) Progress(id string) progress.ConceptProgress {
	return e.progress.Get(id)
}

// IsLearned reports whether id has at least 3 attempts and confidence >= 70.
func (e *Engine) IsLearned(id string) bool {
	return e.Progress(id).IsLearned()
}

// LearnedConceptNames returns the names of learned concepts in catalog order.
func (e *Engine) LearnedConceptNames() []string {
	var names []string
	for _, c := range e.catalog.All() {
		if e.IsLearned(c.ID) {
			names = append(names, c.Name)
		}
	}
	return names
}
