package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the catalog for structural problems. The mastery engine
// does not defend against cycles, so catalogs should be validated on load.
func (c *Catalog) Validate() error {
	return validateConcepts(c.concepts)
}

// validateConcepts returns a combined error describing all problems found,
// or nil if the set is well formed.
func validateConcepts(concepts []Concept) error {
	var errs []string

	if len(concepts) == 0 {
		return fmt.Errorf("catalog validation failed:\n  catalog is empty")
	}

	idSet := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("concept %q has an empty ID", c.Name))
			continue
		}
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
	}

	for _, c := range concepts {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no name", c.ID))
		}
		if !c.Unit.Valid() {
			errs = append(errs, fmt.Sprintf("concept %q has unknown unit %q", c.ID, c.Unit))
		}
		if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
			errs = append(errs, fmt.Sprintf("concept %q: difficulty must be in [%d, %d], got %d",
				c.ID, MinDifficulty, MaxDifficulty, c.Difficulty))
		}
		for _, prereqID := range c.Prerequisites {
			if prereqID == c.ID {
				errs = append(errs, fmt.Sprintf("concept %q lists itself as a prerequisite", c.ID))
			} else if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("concept %q references nonexistent prerequisite %q", c.ID, prereqID))
			}
		}
	}

	// Kahn's algorithm over known edges; anything left has a cycle.
	inDegree := make(map[string]int, len(concepts))
	adj := make(map[string][]string)
	seen := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		for _, prereqID := range c.Prerequisites {
			if idSet[prereqID] {
				inDegree[c.ID]++
				adj[prereqID] = append(adj[prereqID], c.ID)
			}
		}
	}

	var queue []string
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
			inDegree[c.ID] = -1
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range adj[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
				inDegree[depID] = -1
			}
		}
	}

	var cycleNodes []string
	for _, c := range concepts {
		if inDegree[c.ID] > 0 {
			cycleNodes = append(cycleNodes, c.ID)
			inDegree[c.ID] = 0
		}
	}
	if len(cycleNodes) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
