// Package bootstrap wires configuration, storage, the AI client, and HTTP
// handlers into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"carbonwise-backend/internal/bills"
	"carbonwise-backend/internal/invoices"
	"carbonwise-backend/internal/llm"
	"carbonwise-backend/internal/llm/gemini"
	"carbonwise-backend/internal/lpg"
	"carbonwise-backend/internal/pdfs"
	"carbonwise-backend/internal/shared/config"
	"carbonwise-backend/internal/shared/server"
	"carbonwise-backend/internal/shared/storage/db"
	"carbonwise-backend/internal/shared/telemetry"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	AI llm.Client

	BillsRepo    bills.Repo
	InvoicesRepo invoices.Repo
	LPGRepo      lpg.Repo
	PdfsRepo     pdfs.Repo

	BillsService *bills.Service
}

// Build constructs the application from configuration. In dev-like
// environments a missing or unreachable database degrades to in-memory
// stores; in production it is fatal.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ai, err := buildAI(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, AI: ai}

	if sqlDB != nil {
		app.BillsRepo = &bills.PGRepo{DB: sqlDB}
		app.InvoicesRepo = &invoices.PGRepo{DB: sqlDB}
		app.LPGRepo = &lpg.PGRepo{DB: sqlDB}
		app.PdfsRepo = &pdfs.PGRepo{DB: sqlDB}
	} else {
		app.BillsRepo = bills.NewMemoryRepo()
		app.InvoicesRepo = invoices.NewMemoryRepo()
		app.LPGRepo = lpg.NewMemoryRepo()
		app.PdfsRepo = pdfs.NewMemoryRepo()
	}

	app.BillsService = &bills.Service{Repo: app.BillsRepo, AI: ai}

	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Bills: bills.NewHandler(app.BillsService),
		DB:    sqlDB,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("db.disabled", map[string]any{"reason": "DATABASE_URL not set"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required in %s", cfg.Env)
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("db.connect_failed", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = db.CloseSingleton()
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("db.migrate_failed", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildAI(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			if config.IsDevLike(cfg.Env) {
				telemetry.Warn("ai.disabled", map[string]any{"reason": "GEMINI_API_KEY not set"})
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required in %s", cfg.Env)
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	case "none", "":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
