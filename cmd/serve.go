package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/explain"
	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/questiongen"
	"github.com/abhisek/econiz/internal/review"
	"github.com/abhisek/econiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe opens the stores, builds the generators and serves until
// interrupted. A missing LLM provider is not fatal: progress endpoints keep
// working and the generator endpoints report the configuration error.
func runServe(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{
		Catalog:        e.catalog,
		Progress:       e.progress,
		Log:            e.log,
		AllowedOrigins: e.cfg.Server.AllowedOrigins,
	}

	provider, err := newProvider(cmd, e)
	if err != nil {
		e.log.Warn("LLM provider not configured; AI features unavailable", zap.Error(err))
		deps.LLMErr = err
	} else {
		deps.Questions = questiongen.New(provider, questiongen.DefaultConfig())
		deps.Explainer = explain.NewService(provider, explain.DefaultConfig())
		deps.Reviewer = review.NewService(provider, review.DefaultConfig())
	}

	addr, err := listenAddr(cmd, e.cfg.Server.Addr)
	if err != nil {
		return err
	}

	e.log.Info("starting econiz",
		zap.String("addr", addr),
		zap.String("storage", e.cfg.Storage.Backend),
		zap.Int("concepts", e.catalog.Len()))

	if err := server.New(deps).Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// listenAddr returns --addr when set, else the configured address.
func listenAddr(cmd *cobra.Command, configured string) (string, error) {
	a, err := cmd.Flags().GetString("addr")
	if err != nil {
		return "", fmt.Errorf("read --addr: %w", err)
	}
	if a != "" {
		return a, nil
	}
	return configured, nil
}

// newProvider builds the configured LLM provider with logging, retry and
// timeout wrappers.
func newProvider(cmd *cobra.Command, e *env) (llm.Provider, error) {
	return llm.NewProvider(cmd.Context(), e.cfg.LLMSettings(), e.eventRepo(), e.log)
}
