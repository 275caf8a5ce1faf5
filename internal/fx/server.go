package fx

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/neurativo/backend/internal/ai"
	"github.com/neurativo/backend/internal/config"
	"github.com/neurativo/backend/internal/core"
	"github.com/neurativo/backend/internal/middleware"
	"github.com/neurativo/backend/internal/server"
	"github.com/neurativo/backend/internal/store"
	"github.com/neurativo/backend/internal/usage"
	"go.uber.org/fx"
)

// ServerModule starts the HTTP server and the background worker
var ServerModule = fx.Module("server",
	fx.Invoke(
		StartServer,
		StartUsageWorker,
	),
)

// ServerParams groups dependencies for the HTTP server
type ServerParams struct {
	fx.In
	Lifecycle   fx.Lifecycle
	Store       *store.PostgresStore
	ContentCore *core.ContentCore
	AIService   *ai.Service
	Auth        *middleware.Auth
	Config      config.Config
}

// StartServer wires the handler chain and manages the server lifecycle
func StartServer(p ServerParams) {
	restHandler := server.CreateRESTHandler(server.Services{
		ContentCore: p.ContentCore,
		AIService:   p.AIService,
		Auth:        p.Auth,
	})
	handler := server.CreateRecoveryHandler(server.CreateHTTPHandler(restHandler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", p.Config.HTTPPort),
		Handler: handler,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("[FX] HTTP Server listening on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down HTTP server...")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			p.Store.Close()
			return nil
		},
	})
}

// WorkerStartParams groups dependencies for the retention worker
type WorkerStartParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Worker    *usage.Worker
}

// StartUsageWorker starts the nightly usage-log retention sweep
func StartUsageWorker(p WorkerStartParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			return nil
		},
	})
}
