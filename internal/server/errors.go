package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/llm"
)

// errorResponse is the envelope of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// respondGenerationError maps a generator failure to a status and message.
// what names the artifact, e.g. "question".
func (s *Server) respondGenerationError(c *gin.Context, err error, what string) {
	_ = c.Error(err)

	switch llm.Classify(err) {
	case llm.KindNotConfigured:
		respondError(c, http.StatusInternalServerError, err.Error())
	case llm.KindRateLimit:
		respondError(c, http.StatusTooManyRequests, "API rate limit reached. Please wait a moment and try again.")
	case llm.KindUnavailable, llm.KindTimeout:
		respondError(c, http.StatusServiceUnavailable, "Unable to connect to AI service. Please try again.")
	case llm.KindInvalidResponse:
		s.log.Warn("unusable LLM output", zap.String("artifact", what), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate "+what+". Please try again.")
	default:
		s.log.Error("generation failed", zap.String("artifact", what), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate "+what+". Please try again.")
	}
}

// generatorsReady writes the not-configured error when no provider is set.
func (s *Server) generatorsReady(c *gin.Context) bool {
	if s.deps.LLMErr == nil && s.deps.Questions != nil {
		return true
	}
	err := s.deps.LLMErr
	if err == nil {
		err = &llm.ErrNotConfigured{}
	}
	respondError(c, http.StatusInternalServerError, err.Error())
	return false
}
