package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"
)

//go:embed data/concepts.json
var defaultCatalogJSON []byte

// Catalog is an immutable, indexed set of concepts. Catalog order is the
// order of the source document and is used for every stable tie-break.
type Catalog struct {
	concepts   []Concept
	byID       map[string]int
	byUnit     map[Unit][]Concept
	dependents map[string][]string
	topoOrder  []Concept
}

// New builds a catalog from concepts. The first occurrence of a duplicate
// ID wins the index; Validate reports duplicates.
func New(concepts []Concept) *Catalog {
	c := &Catalog{
		concepts:   slices.Clone(concepts),
		byID:       make(map[string]int, len(concepts)),
		byUnit:     make(map[Unit][]Concept),
		dependents: make(map[string][]string),
	}

	for i := range c.concepts {
		id := c.concepts[i].ID
		if _, dup := c.byID[id]; !dup {
			c.byID[id] = i
		}
		c.byUnit[c.concepts[i].Unit] = append(c.byUnit[c.concepts[i].Unit], c.concepts[i])
	}

	for _, concept := range c.concepts {
		for _, prereqID := range concept.Prerequisites {
			c.dependents[prereqID] = append(c.dependents[prereqID], concept.ID)
		}
	}

	c.topoOrder = c.topologicalOrder()
	return c
}

// Parse decodes a JSON array of concepts.
func Parse(data []byte) (*Catalog, error) {
	var concepts []Concept
	if err := json.Unmarshal(data, &concepts); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(concepts), nil
}

// LoadFile reads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultCatalogJSON)
})

// Default returns the embedded IB Economics catalog.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is malformed: %v", err))
	}
	return c
}

// Load returns the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Len returns the number of concepts.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// All returns all concepts in catalog order.
func (c *Catalog) All() []Concept {
	return slices.Clone(c.concepts)
}

// Get returns the concept with the given ID.
func (c *Catalog) Get(id string) (Concept, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Concept{}, false
	}
	return c.concepts[i], true
}

// MustGet is Get for IDs known to exist.
func (c *Catalog) MustGet(id string) Concept {
	concept, ok := c.Get(id)
	if !ok {
		panic(fmt.Sprintf("concept not found: %q", id))
	}
	return concept
}

// Index returns the catalog position of id, or -1.
func (c *Catalog) Index(id string) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// ByUnit returns the concepts of a unit in catalog order.
func (c *Catalog) ByUnit(u Unit) []Concept {
	return slices.Clone(c.byUnit[u])
}

// Prerequisites returns the direct prerequisites of id that exist in the
// catalog, in listed order.
func (c *Catalog) Prerequisites(id string) []Concept {
	concept, ok := c.Get(id)
	if !ok {
		return nil
	}
	result := make([]Concept, 0, len(concept.Prerequisites))
	for _, prereqID := range concept.Prerequisites {
		if p, ok := c.Get(prereqID); ok {
			result = append(result, p)
		}
	}
	return result
}

// Dependents returns concepts that list id as a direct prerequisite.
func (c *Catalog) Dependents(id string) []Concept {
	depIDs := c.dependents[id]
	result := make([]Concept, 0, len(depIDs))
	for _, depID := range depIDs {
		if d, ok := c.Get(depID); ok {
			result = append(result, d)
		}
	}
	return result
}

// Roots returns concepts with no prerequisites.
func (c *Catalog) Roots() []Concept {
	var roots []Concept
	for _, concept := range c.concepts {
		if len(concept.Prerequisites) == 0 {
			roots = append(roots, concept)
		}
	}
	return roots
}

// TopologicalOrder returns concepts with every prerequisite before its
// dependents. Concepts caught in a cycle are appended in catalog order.
func (c *Catalog) TopologicalOrder() []Concept {
	return slices.Clone(c.topoOrder)
}

// topologicalOrder runs Kahn's algorithm, seeding and releasing nodes in
// catalog order so the result is deterministic.
func (c *Catalog) topologicalOrder() []Concept {
	inDegree := make(map[string]int, len(c.byID))
	for id, i := range c.byID {
		n := 0
		for _, prereqID := range c.concepts[i].Prerequisites {
			if _, ok := c.byID[prereqID]; ok {
				n++
			}
		}
		inDegree[id] = n
	}

	var queue []string
	for id := range c.byID {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	slices.SortFunc(queue, func(a, b string) int { return c.byID[a] - c.byID[b] })

	emitted := make(map[string]bool, len(c.byID))
	order := make([]Concept, 0, len(c.byID))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if emitted[id] {
			continue
		}
		emitted[id] = true
		order = append(order, c.MustGet(id))

		for _, depID := range c.dependents[id] {
			if _, ok := inDegree[depID]; !ok {
				continue
			}
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	for _, concept := range c.concepts {
		if !emitted[concept.ID] {
			emitted[concept.ID] = true
			order = append(order, concept)
		}
	}
	return order
}
