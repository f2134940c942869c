// Package api wires configuration, clients, services, and the HTTP server
// into one runnable application.
package api

import (
	"context"

	"go.uber.org/zap"

	"buildflow/internal/api/handler"
	"buildflow/internal/api/server"
	"buildflow/internal/chat"
	"buildflow/internal/config"
	"buildflow/internal/deploy"
	"buildflow/internal/llm"
	"buildflow/internal/store"
)

type App struct {
	server *server.Server
}

// New builds the app. Missing or broken external credentials do not abort
// startup: the corresponding dependency stays nil and the affected
// endpoints answer 503 until the deployment is fixed.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	var projects chat.ProjectStore
	var metadata deploy.MetadataStore
	if cfg.SupabaseConfigured() {
		st, err := store.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		if err != nil {
			log.Warn("supabase client init failed, store endpoints degraded", zap.Error(err))
		} else {
			projects = st
			metadata = st
		}
	} else {
		log.Warn("supabase not configured, store endpoints degraded")
	}

	var model chat.ModelClient
	if cfg.GeminiConfigured() {
		cli, err := llm.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("gemini client init failed, chat endpoint degraded", zap.Error(err))
		} else {
			model = cli
		}
	} else {
		log.Warn("gemini not configured, chat endpoint degraded")
	}

	chatSvc := chat.New(projects, model, log)
	deploySvc := deploy.New(metadata, nil, log)
	h := handler.New(chatSvc, deploySvc, log)

	return &App{
		server: server.New(cfg.Addr, server.NewRouter(h, log), log),
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
