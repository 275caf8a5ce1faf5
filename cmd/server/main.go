package main

import (
	"log"

	appfx "github.com/neurativo/backend/internal/fx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,      // Provides: config.Config
		appfx.StoreModule,       // Provides: *store.PostgresStore
		appfx.SettingsModule,    // Provides: *settings.Service (database-backed)
		appfx.TokenModule,       // Provides: *token.Manager, *middleware.Auth
		appfx.FetcherModule,     // Provides: *fetcher.Fetcher
		appfx.AIModule,          // Provides: *ai.Registry, *usage.Logger, *ai.Service
		appfx.CoreModule,        // Provides: *core.ContentCore
		appfx.UsageWorkerModule, // Provides: *usage.Worker
		appfx.ServerModule,      // Starts HTTP server and retention worker

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
