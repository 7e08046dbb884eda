package commands

// #region imports
import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/techflow/supportflow/internal/audit"
	"github.com/techflow/supportflow/internal/catalog"
	"github.com/techflow/supportflow/internal/config"
	"github.com/techflow/supportflow/internal/conversation"
	"github.com/techflow/supportflow/internal/directory"
	"github.com/techflow/supportflow/internal/intent"
	"github.com/techflow/supportflow/internal/llm"
	"github.com/techflow/supportflow/internal/playbook"
	"github.com/techflow/supportflow/internal/policy"
	"github.com/techflow/supportflow/internal/retention"
)

// #endregion imports

// #region app

// app bundles the wired components shared across subcommands.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *directory.Store
	auditLog *audit.Log
	catalogs *catalog.Holder
	index    *policy.Index
	orch     *conversation.Orchestrator
	watcher  *config.RulesWatcher
}

// buildApp loads config, opens the state database, builds the policy index,
// and wires the orchestrator.
func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := directory.NewStore(cfg.Data.StatePath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Data.CustomersCSV); err == nil {
		n, err := store.ImportCSV(cfg.Data.CustomersCSV)
		if err != nil {
			store.Close()
			return nil, err
		}
		log.Debug().Int("customers", n).Str("csv", cfg.Data.CustomersCSV).Msg("customer directory seeded")
	}

	auditLog, err := audit.NewLog(store.DB())
	if err != nil {
		store.Close()
		return nil, err
	}

	cat, err := catalog.Load(cfg.Data.RulesPath)
	if err != nil {
		store.Close()
		return nil, err
	}
	catalogs := catalog.NewHolder(cat)

	pb, err := playbook.Load(cfg.Data.PlaybookPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	// The playbook and the rendered rules are indexed alongside the policy
	// documents so authorization questions are answerable from retrieval.
	index, err := policy.LoadDir(cfg.Data.PoliciesDir,
		policy.IndexConfig{ChunkSize: cfg.Index.ChunkSize, ChunkOverlap: cfg.Index.ChunkOverlap},
		policy.Document{Name: "retention_playbook.md", Content: pb.Text()},
		policy.Document{Name: "retention_rules", Content: cat.RenderText()},
	)
	if err != nil {
		store.Close()
		return nil, err
	}

	gen, err := newGenerator(cfg.Generator)
	if err != nil {
		store.Close()
		return nil, err
	}

	classifier := intent.NewClassifier(gen, index, store, log)
	planner := retention.NewPlanner(gen, index, catalogs, pb, log)
	orch := conversation.NewOrchestrator(classifier, planner, gen, index, auditLog, log)

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		auditLog: auditLog,
		catalogs: catalogs,
		index:    index,
		orch:     orch,
	}, nil
}

// startRulesWatcher begins hot-reloading the retention rules file into the
// catalog holder.
func (a *app) startRulesWatcher(ctx context.Context) error {
	w, err := config.NewRulesWatcher(a.cfg.Data.RulesPath, a.cfg.Data.RulesDebounce, func(path string) error {
		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		a.catalogs.Swap(cat)
		return nil
	}, a.log)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.watcher = w
	return nil
}

func (a *app) close() {
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.log.Warn().Err(err).Msg("rules watcher stop")
		}
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("state db close")
	}
}

// #endregion app

// #region logger

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level := cfg.Level
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if logPretty || cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return logger.Level(lvl).With().Timestamp().Logger(), nil
}

// #endregion logger

// #region generator

func newGenerator(cfg config.GeneratorConfig) (llm.Generator, error) {
	switch cfg.Backend {
	case "anthropic":
		return llm.NewAnthropicGenerator(llm.AnthropicConfig{
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}), nil
	case "scripted":
		// Offline mode for demos and development: canned replies, no API calls.
		return &llm.ScriptedGenerator{
			Default: "Thank you for reaching out. A specialist will follow up with you shortly.",
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.Backend)
	}
}

// #endregion generator
