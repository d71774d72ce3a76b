package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/mastery"
	"github.com/abhisek/econiz/internal/progress"
)

type conceptView struct {
	catalog.Concept
	Progress             progress.ConceptProgress `json:"progress"`
	Mastery              mastery.Level            `json:"mastery"`
	Learned              bool                     `json:"learned"`
	Available            bool                     `json:"available"`
	MissingPrerequisites []string                 `json:"missingPrerequisites"`
}

type chainLink struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Learned bool          `json:"learned"`
	Mastery mastery.Level `json:"mastery"`
}

type answerRequest struct {
	ConceptID     string            `json:"conceptId"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	StudentAnswer string            `json:"studentAnswer"`
	CorrectAnswer string            `json:"correctAnswer"`
	TimeTaken     *float64          `json:"timeTaken"`
	Explanation   *string           `json:"explanation"`
}

type answerResponse struct {
	Progress     progress.ConceptProgress `json:"progress"`
	HistoryEntry progress.HistoryEntry    `json:"historyEntry"`
	Learned      bool                     `json:"learned"`
	Mastery      mastery.Level            `json:"mastery"`
}

// lookupConcept resolves the :id path parameter or writes a 404.
func (s *Server) lookupConcept(c *gin.Context, id string) (catalog.Concept, bool) {
	concept, ok := s.deps.Catalog.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "Unknown concept: "+id)
	}
	return concept, ok
}

func (s *Server) listConcepts(c *gin.Context) {
	eng := s.engineFor(c.Request.Context())

	views := make([]conceptView, 0, s.deps.Catalog.Len())
	for _, concept := range s.deps.Catalog.All() {
		status := eng.PrerequisitesMet(concept)
		missing := make([]string, 0, len(status.Missing))
		for _, m := range status.Missing {
			missing = append(missing, m.ID)
		}
		views = append(views, conceptView{
			Concept:              concept,
			Progress:             eng.Progress(concept.ID),
			Mastery:              eng.MasteryLevel(concept.ID),
			Learned:              eng.IsLearned(concept.ID),
			Available:            status.Met,
			MissingPrerequisites: missing,
		})
	}
	c.JSON(http.StatusOK, gin.H{"concepts": views})
}

func (s *Server) conceptChain(c *gin.Context) {
	concept, ok := s.lookupConcept(c, c.Param("id"))
	if !ok {
		return
	}
	eng := s.engineFor(c.Request.Context())

	chain := eng.PrerequisiteChain(concept)
	links := make([]chainLink, 0, len(chain))
	allLearned := true
	for _, p := range chain {
		learned := eng.IsLearned(p.ID)
		allLearned = allLearned && learned
		links = append(links, chainLink{ID: p.ID, Name: p.Name, Learned: learned, Mastery: eng.MasteryLevel(p.ID)})
	}
	c.JSON(http.StatusOK, gin.H{
		"concept":    concept.ID,
		"chain":      links,
		"allLearned": allLearned,
		"available":  eng.IsAvailable(concept),
	})
}

func (s *Server) recordAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ConceptID == "" || req.StudentAnswer == "" || req.CorrectAnswer == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	concept, ok := s.lookupConcept(c, req.ConceptID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p := s.deps.Progress.RecordAnswer(ctx, concept.ID, req.StudentAnswer == req.CorrectAnswer)
	entry := s.deps.Progress.AddHistory(ctx, progress.NewHistoryEntry{
		ConceptID:     concept.ID,
		ConceptName:   concept.Name,
		Question:      req.Question,
		Options:       req.Options,
		StudentAnswer: req.StudentAnswer,
		CorrectAnswer: req.CorrectAnswer,
		TimeTaken:     req.TimeTaken,
		Explanation:   req.Explanation,
	})

	c.JSON(http.StatusOK, answerResponse{
		Progress:     p,
		HistoryEntry: entry,
		Learned:      p.IsLearned(),
		Mastery:      mastery.LevelFor(mastery.Classify(p.Attempts, p.Confidence)),
	})
}

func (s *Server) conceptProgress(c *gin.Context) {
	concept, ok := s.lookupConcept(c, c.Param("id"))
	if !ok {
		return
	}
	eng := s.engineFor(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"conceptId":     concept.ID,
		"progress":      eng.Progress(concept.ID),
		"mastery":       eng.MasteryLevel(concept.ID),
		"learned":       eng.IsLearned(concept.ID),
		"prerequisites": eng.PrerequisitesMet(concept),
	})
}

func (s *Server) resetProgress(c *gin.Context) {
	s.deps.Progress.Reset(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (s *Server) history(c *gin.Context) {
	entries := s.deps.Progress.History(c.Request.Context())
	if entries == nil {
		entries = []progress.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (s *Server) stats(c *gin.Context) {
	eng := s.engineFor(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"stats":    eng.OverallStats(),
		"velocity": eng.LearningVelocity(),
		"byStatus": eng.ConceptsByStatus(),
	})
}

func (s *Server) recommendations(c *gin.Context) {
	eng := s.engineFor(c.Request.Context())

	resp := gin.H{"recommended": nil, "weakest": nil}
	if rec, ok := eng.RecommendedConcept(); ok {
		resp["recommended"] = rec
	}
	if weak, ok := eng.FindWeakestConcept(); ok {
		resp["weakest"] = weak
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) studyPath(c *gin.Context) {
	raw := c.Query("days")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "days is required")
		return
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "days must be an integer")
		return
	}
	c.JSON(http.StatusOK, s.engineFor(c.Request.Context()).StudyPath(days))
}

func (s *Server) graph(c *gin.Context) {
	c.JSON(http.StatusOK, s.engineFor(c.Request.Context()).DependencyGraph())
}
