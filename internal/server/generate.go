package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/explain"
	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/questiongen"
	"github.com/abhisek/econiz/internal/review"
)

type generateQuestionRequest struct {
	Concept         *catalog.Concept          `json:"concept"`
	UserPerformance *progress.ConceptProgress `json:"userPerformance"`
	// LearnedConcepts defaults to the learner's mastered concepts when
	// omitted; an explicit empty list is kept.
	LearnedConcepts []string `json:"learnedConcepts"`
}

type explainRequest struct {
	Concept       *catalog.Concept  `json:"concept"`
	Question      string            `json:"question"`
	StudentAnswer string            `json:"studentAnswer"`
	CorrectAnswer string            `json:"correctAnswer"`
	Options       map[string]string `json:"options"`
	HistoryID     string            `json:"historyId"`
}

type reviewRequest struct {
	Concept         *catalog.Concept          `json:"concept"`
	UserPerformance *progress.ConceptProgress `json:"userPerformance"`
}

// resolveConcept prefers the catalog's copy of a concept. Concepts outside
// the catalog are accepted when the payload describes them fully enough to
// prompt with.
func (s *Server) resolveConcept(c *gin.Context, in *catalog.Concept, missingMsg string) (catalog.Concept, bool) {
	if in == nil || (in.ID == "" && in.Name == "") {
		respondError(c, http.StatusBadRequest, missingMsg)
		return catalog.Concept{}, false
	}
	if known, ok := s.deps.Catalog.Get(in.ID); ok {
		return known, true
	}
	if in.Name == "" {
		respondError(c, http.StatusNotFound, "Unknown concept: "+in.ID)
		return catalog.Concept{}, false
	}
	return *in, true
}

// storedPerformance returns the saved record for a started concept.
func (s *Server) storedPerformance(c *gin.Context, id string) *progress.ConceptProgress {
	p := s.deps.Progress.Read(c.Request.Context(), id)
	if !p.Started() {
		return nil
	}
	return &p
}

func (s *Server) generateQuestion(c *gin.Context) {
	var req generateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	concept, ok := s.resolveConcept(c, req.Concept, "Concept is required")
	if !ok || !s.generatorsReady(c) {
		return
	}

	ctx := c.Request.Context()
	perf := req.UserPerformance
	if perf == nil {
		perf = s.storedPerformance(c, concept.ID)
	}
	learned := req.LearnedConcepts
	if learned == nil {
		learned = s.engineFor(ctx).LearnedConceptNames()
	}

	q, err := s.deps.Questions.Generate(ctx, questiongen.GenerateInput{
		Concept:         concept,
		Performance:     perf,
		LearnedConcepts: learned,
	})
	if err != nil {
		s.respondGenerationError(c, err, "question")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) explain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Concept == nil || req.Question == "" || req.StudentAnswer == "" || req.CorrectAnswer == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	concept, ok := s.resolveConcept(c, req.Concept, "Missing required fields")
	if !ok || !s.generatorsReady(c) {
		return
	}

	ctx := c.Request.Context()
	out, err := s.deps.Explainer.Explain(ctx, explain.Input{
		Concept:       concept,
		Question:      req.Question,
		StudentAnswer: req.StudentAnswer,
		CorrectAnswer: req.CorrectAnswer,
		Options:       req.Options,
	})
	if err != nil {
		s.respondGenerationError(c, err, "explanation")
		return
	}

	if req.HistoryID != "" && !s.deps.Progress.AttachExplanation(ctx, req.HistoryID, out) {
		s.log.Debug("history entry not found for explanation", zap.String("history_id", req.HistoryID))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	concept, ok := s.resolveConcept(c, req.Concept, "Concept is required")
	if !ok || !s.generatorsReady(c) {
		return
	}

	perf := req.UserPerformance
	if perf == nil {
		perf = s.storedPerformance(c, concept.ID)
	}

	out, err := s.deps.Reviewer.Review(c.Request.Context(), review.Input{Concept: concept, Performance: perf})
	if err != nil {
		s.respondGenerationError(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, out)
}
