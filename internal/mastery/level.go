package mastery

import "github.com/abhisek/econiz/internal/catalog"

// Status is the display classification of a concept.
type Status string

const (
	StatusNotAttempted Status = "not_attempted"
	StatusMastered     Status = "mastered"
	StatusLearning     Status = "learning"
	StatusStruggling   Status = "struggling"
)

// Display thresholds on confidence. Mastered shares the learned threshold
// but ignores the attempt count.
const (
	MasteredConfidence = 70
	LearningConfidence = 40
)

// Level is the display descriptor for a concept's mastery.
type Level struct {
	Level Status `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var levels = map[Status]Level{
	StatusNotAttempted: {Level: StatusNotAttempted, Label: "Not Attempted", Color: "#9ca3af"},
	StatusMastered:     {Level: StatusMastered, Label: "Mastered", Color: "#22c55e"},
	StatusLearning:     {Level: StatusLearning, Label: "Learning", Color: "#eab308"},
	StatusStruggling:   {Level: StatusStruggling, Label: "Needs Practice", Color: "#ef4444"},
}

// LevelFor returns the descriptor for a status.
func LevelFor(s Status) Level {
	return levels[s]
}

// Classify maps attempt count and confidence to a status.
func Classify(attempts, confidence int) Status {
	switch {
	case attempts == 0:
		return StatusNotAttempted
	case confidence >= MasteredConfidence:
		return StatusMastered
	case confidence >= LearningConfidence:
		return StatusLearning
	default:
		return StatusStruggling
	}
}

// MasteryLevel returns the display level for id.
func (e *Engine) MasteryLevel(id string) Level {
	p := e.Progress(id)
	return LevelFor(Classify(p.Attempts, p.Confidence))
}

// StatusBuckets groups catalog concepts by display status.
type StatusBuckets struct {
	Mastered   []catalog.Concept `json:"mastered"`
	Learning   []catalog.Concept `json:"learning"`
	Struggling []catalog.Concept `json:"struggling"`
	NotStarted []catalog.Concept `json:"notStarted"`
}

// ConceptsByStatus buckets every catalog concept, preserving catalog order
// within each bucket.
func (e *Engine) ConceptsByStatus() StatusBuckets {
	b := StatusBuckets{
		Mastered:   []catalog.Concept{},
		Learning:   []catalog.Concept{},
		Struggling: []catalog.Concept{},
		NotStarted: []catalog.Concept{},
	}
	for _, c := range e.catalog.All() {
		switch e.MasteryLevel(c.ID).Level {
		case StatusMastered:
			b.Mastered = append(b.Mastered, c)
		case StatusLearning:
			b.Learning = append(b.Learning, c)
		case StatusStruggling:
			b.Struggling = append(b.Struggling, c)
		default:
			b.NotStarted = append(b.NotStarted, c)
		}
	}
	return b
}
