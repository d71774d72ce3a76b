package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/config"
	"github.com/abhisek/econiz/internal/logger"
	"github.com/abhisek/econiz/internal/mastery"
	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "econiz",
	Short: "Adaptive IB Economics practice engine",
	Long: "Econiz tracks mastery of IB Economics concepts, recommends what to study next\n" +
		"and serves AI-generated practice questions, explanations and reviews.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/econiz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides ECONIZ_DB env var)")
	pf.String("catalog", "", "Path to a concept catalog JSON file (default: embedded IB catalog)")
	pf.String("storage", "", "Progress backend: sqlite, redis or memory")
	pf.String("addr", "", "HTTP listen address for serve (overrides server.addr)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	catalog  *catalog.Catalog
	progress *progress.Store
	// db is nil for the memory backend.
	db *store.Store

	closers []func() error
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Storage.Path = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog.Path = v
	}
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage.Backend = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv loads config, logger, catalog and the progress backend. Callers
// must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log, catalog: cat}

	var kv store.KV
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		kv = store.NewMemoryKV()
	case config.BackendRedis:
		r, err := store.OpenRedis(cmd.Context(), cfg.Storage.RedisAddr, cfg.Storage.RedisPrefix)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, r.Close)
		kv = r
	}

	// SQLite always holds the LLM event log, except for a fully in-memory run.
	if cfg.Storage.Backend != config.BackendMemory {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		e.db = st
		e.closers = append(e.closers, st.Close)
		if kv == nil {
			kv = st.KV()
		}
	}

	e.progress = progress.NewStore(kv, progress.WithLogger(log))
	return e, nil
}

// engine loads the current progress into a mastery engine.
func (e *env) engine(ctx context.Context) *mastery.Engine {
	return mastery.New(e.catalog, e.progress.Snapshot(ctx))
}

// eventRepo returns the LLM event log, or nil when there is no database.
func (e *env) eventRepo() store.EventRepo {
	if e.db == nil {
		return nil
	}
	return e.db.EventRepo()
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	_ = e.log.Sync()
	return errors.Join(errs...)
}

// resolveDBPath returns the configured database path (from --db, ECONIZ_DB
// or the config file), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Storage.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openDB opens only the SQLite database, for commands that read the LLM
// event log.
func openDB(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
