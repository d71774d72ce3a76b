package progress

import (
	"encoding/json"
	"time"
)

// MaxHistory bounds the question history log.
const MaxHistory = 10

// HistoryEntry is one answered question. IsCorrect is derived when the
// entry is created and never recomputed.
type HistoryEntry struct {
	ID                      string            `json:"id"`
	Timestamp               time.Time         `json:"timestamp"`
	ConceptID               string            `json:"conceptId"`
	ConceptName             string            `json:"conceptName"`
	Question                string            `json:"question"`
	Options                 map[string]string `json:"options"`
	StudentAnswer           string            `json:"studentAnswer"`
	CorrectAnswer           string            `json:"correctAnswer"`
	IsCorrect               bool              `json:"isCorrect"`
	TimeTaken               *float64          `json:"timeTaken"`
	Explanation             *string           `json:"explanation"`
	PersonalizedExplanation json.RawMessage   `json:"personalizedExplanation"`
}

// NewHistoryEntry is the caller-supplied part of a HistoryEntry.
type NewHistoryEntry struct {
	ConceptID     string
	ConceptName   string
	Question      string
	Options       map[string]string
	StudentAnswer string
	CorrectAnswer string
	TimeTaken     *float64
	Explanation   *string
}
