// Package app initializes and orchestrates the main components of the
// application, wiring configuration, storage, the LLM client, and the HTTP
// server together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codemaster-gdg/codementor/internal/auth"
	"github.com/codemaster-gdg/codementor/internal/config"
	"github.com/codemaster-gdg/codementor/internal/db"
	"github.com/codemaster-gdg/codementor/internal/gitutil"
	"github.com/codemaster-gdg/codementor/internal/llm"
	"github.com/codemaster-gdg/codementor/internal/normalizer"
	"github.com/codemaster-gdg/codementor/internal/server"
	"github.com/codemaster-gdg/codementor/internal/server/handler"
	"github.com/codemaster-gdg/codementor/internal/session"
	"github.com/codemaster-gdg/codementor/internal/storage"
)

// Components are the constructed collaborators, shared by the HTTP server and
// the CLI.
type Components struct {
	Store      storage.Store
	Normalizer *normalizer.Normalizer
	Prompts    *llm.PromptManager
	Provider   llm.ModelProvider
	Generator  *llm.ModelGenerator
	Verifier   *auth.JWTVerifier
	DB         *db.DB
}

// SessionDeps bundles the components into orchestrator dependencies.
func (c *Components) SessionDeps(logger *slog.Logger) session.Deps {
	return session.Deps{
		Normalizer: c.Normalizer,
		Prompts:    c.Prompts,
		Provider:   c.Provider,
		Generator:  c.Generator,
		Store:      c.Store,
		Logger:     logger,
	}
}

// NewComponents builds every collaborator from configuration.
func NewComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("initializing components",
		"llm_provider", cfg.LLMProvider,
		"generator_model", cfg.GeneratorModelName)

	dbConn, err := db.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	model, err := llm.NewModel(ctx, cfg, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	prompts, err := llm.NewPromptManager()
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}

	cloner := gitutil.NewClient(cfg.CloneDir, logger)

	return &Components{
		Store:      storage.NewStore(dbConn.DB, logger),
		Normalizer: normalizer.New(cloner, logger),
		Prompts:    prompts,
		Provider:   llm.ProviderFor(cfg.LLMProvider),
		Generator:  llm.NewModelGenerator(model, cfg.GenerationTimeout, logger),
		Verifier:   auth.NewJWTVerifier(cfg.AuthJWTSecret),
		DB:         dbConn,
	}, nil
}

// Close releases held resources.
func (c *Components) Close() error {
	return c.DB.Close()
}

// App holds the main application components.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	components *Components
	logger     *slog.Logger
}

// NewApp sets up the application with all its dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	components, err := NewComponents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := handler.NewDeps(handler.Deps{
		Verifier:   components.Verifier,
		Normalizer: components.Normalizer,
		Prompts:    components.Prompts,
		Provider:   components.Provider,
		Generator:  components.Generator,
		Store:      components.Store,
		Logger:     logger,
	})
	httpServer := server.NewServer(ctx, cfg, deps, logger)

	logger.Info("application initialized successfully")
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     httpServer,
		components: components,
		logger:     logger,
	}, nil
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting server", "port", a.cfg.ServerPort)
	return a.server.Start()
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	if err := a.components.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}

	return serverErr
}
