package fx

import (
	"context"
	"log"

	"github.com/neurativo/backend/internal/ai"
	"github.com/neurativo/backend/internal/config"
	"github.com/neurativo/backend/internal/core"
	"github.com/neurativo/backend/internal/fetcher"
	"github.com/neurativo/backend/internal/middleware"
	"github.com/neurativo/backend/internal/settings"
	"github.com/neurativo/backend/internal/store"
	"github.com/neurativo/backend/internal/token"
	"github.com/neurativo/backend/internal/usage"
	"go.uber.org/fx"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// StoreModule provides database connectivity
var StoreModule = fx.Module("store",
	fx.Provide(NewPostgresStore),
)

// SettingsModule provides database-backed settings
var SettingsModule = fx.Module("settings",
	fx.Provide(NewSettingsService),
)

// TokenModule provides JWT token management
var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenManager,
		middleware.NewAuth,
	),
)

// FetcherModule provides the URL fetcher
var FetcherModule = fx.Module("fetcher",
	fx.Provide(fetcher.NewFetcher),
)

// AIModule provides the provider registry, usage logging and the AI service
var AIModule = fx.Module("ai",
	fx.Provide(
		NewAIRegistry,
		NewUsageLogger,
		NewAIService,
	),
)

// CoreModule provides the content pipeline
var CoreModule = fx.Module("core",
	fx.Provide(NewContentCore),
)

// UsageWorkerModule provides the retention worker
var UsageWorkerModule = fx.Module("usage-worker",
	fx.Provide(NewUsageWorker),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewPostgresStore creates database connection
func NewPostgresStore(cfg config.Config) (*store.PostgresStore, error) {
	ctx := context.Background()
	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] PostgresStore initialized")
	return st, nil
}

// NewSettingsService loads remotely managed settings once at startup
func NewSettingsService(st *store.PostgresStore) (*settings.Service, error) {
	svc, err := settings.NewService(context.Background(), st)
	if err != nil {
		return nil, err
	}
	log.Printf("[FX] SettingsService initialized")
	return svc, nil
}

// NewTokenManager creates JWT token manager
func NewTokenManager(cfg config.Config) *token.Manager {
	tm := token.NewManager(cfg.JWTSecret)
	log.Printf("[FX] TokenManager initialized")
	return tm
}

// NewAIRegistry builds the provider registry from environment credentials
// merged with any database override
func NewAIRegistry(cfg config.Config, svc *settings.Service) *ai.Registry {
	creds := ai.Credentials{
		OpenAIKey:      cfg.OpenAIKey,
		ClaudeKey:      cfg.ClaudeKey,
		GeminiKey:      cfg.GeminiKey,
		AIMLAPIKey:     cfg.AIMLAPIKey,
		ActiveProvider: cfg.ActiveProvider,
	}

	override := svc.AIConfig()
	if override.OpenAIKey != "" {
		creds.OpenAIKey = override.OpenAIKey
	}
	if override.ClaudeKey != "" {
		creds.ClaudeKey = override.ClaudeKey
	}
	if override.GeminiKey != "" {
		creds.GeminiKey = override.GeminiKey
	}
	if override.AIMLAPIKey != "" {
		creds.AIMLAPIKey = override.AIMLAPIKey
	}
	if override.ActiveProvider != "" {
		creds.ActiveProvider = override.ActiveProvider
	}

	registry := ai.NewRegistry(context.Background(), creds)
	log.Printf("[FX] AIRegistry initialized")
	return registry
}

// NewUsageLogger creates the per-user usage recorder
func NewUsageLogger(st *store.PostgresStore) *usage.Logger {
	logger := usage.NewLogger(st)
	log.Printf("[FX] UsageLogger initialized")
	return logger
}

// NewAIService creates the AI orchestrator
func NewAIService(registry *ai.Registry, logger *usage.Logger) *ai.Service {
	svc := ai.NewService(registry, logger)
	log.Printf("[FX] AIService initialized")
	return svc
}

// NewContentCore creates the ingestion pipeline
func NewContentCore(f *fetcher.Fetcher, st *store.PostgresStore) *core.ContentCore {
	c := core.NewContentCore(f, st)
	log.Printf("[FX] ContentCore initialized")
	return c
}

// NewUsageWorker creates the retention worker
func NewUsageWorker(st *store.PostgresStore, cfg config.Config) *usage.Worker {
	w := usage.NewWorker(st, cfg.UsageRetentionDays)
	log.Printf("[FX] UsageWorker initialized")
	return w
}
