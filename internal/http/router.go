package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/hockey-pool-service/internal/http/handlers"
	"github.com/preston-bernstein/hockey-pool-service/internal/http/middleware"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
)

// RouterConfig carries the cross-cutting pieces the router wraps handlers with.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
	// Live is mounted at /ws when set.
	Live nethttp.Handler
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Middleware(cfg.Logger, cfg.Metrics))
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/schedule", handler.Schedule)
	r.Get("/standings", handler.Standings)
	r.Get("/view", handler.View)
	r.Get("/status", handler.Status)
	r.Post("/refresh", handler.Refresh)
	if cfg.Live != nil {
		r.Handle("/ws", cfg.Live)
	}
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}
