// Package server exposes the mastery engine and the generators over a
// localhost JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/explain"
	"github.com/abhisek/econiz/internal/mastery"
	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/questiongen"
	"github.com/abhisek/econiz/internal/review"
)

const shutdownTimeout = 5 * time.Second

// Deps are the collaborators the handlers need. The generators may be nil
// when no LLM provider is configured; LLMErr then explains why.
type Deps struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store

	Questions questiongen.Generator
	Explainer explain.Explainer
	Reviewer  review.Reviewer
	LLMErr    error

	Log            *zap.Logger
	AllowedOrigins []string
}

// Server is the HTTP surface.
type Server struct {
	deps   Deps
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the router. gin runs in release mode; request logging goes
// through zap instead.
func New(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{deps: d, log: log}
	s.engine = s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// engineFor loads the current progress snapshot into a fresh engine.
func (s *Server) engineFor(ctx context.Context) *mastery.Engine {
	return mastery.New(s.deps.Catalog, s.deps.Progress.Snapshot(ctx))
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.RedirectTrailingSlash = false

	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		s.log.Error("panic in handler", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}))
	r.Use(corsMiddleware(s.deps.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Generators
		api.POST("/generate-question", s.generateQuestion)
		api.POST("/explain", s.explain)
		api.POST("/review", s.review)

		// Progress
		api.GET("/concepts", s.listConcepts)
		api.GET("/concepts/:id/chain", s.conceptChain)
		api.POST("/answers", s.recordAnswer)
		api.GET("/progress/:id", s.conceptProgress)
		api.DELETE("/progress", s.resetProgress)
		api.GET("/history", s.history)

		// Analytics
		api.GET("/stats", s.stats)
		api.GET("/recommendations", s.recommendations)
		api.GET("/study-path", s.studyPath)
		api.GET("/graph", s.graph)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Not found")
	})
	return r
}
