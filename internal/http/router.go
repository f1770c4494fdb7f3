package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rivalwatch/rival-watch-service/internal/http/handlers"
	"github.com/rivalwatch/rival-watch-service/internal/http/middleware"
	"github.com/rivalwatch/rival-watch-service/internal/http/requestutil"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
)

// RouterConfig carries the handlers and cross-cutting settings for NewRouter.
type RouterConfig struct {
	Handler     *handlers.Handler
	Proxy       *handlers.ProxyHandler
	Admin       *handlers.AdminHandler // nil leaves the admin route unmounted
	CORSOrigins []string
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Recorder))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", h.Teams)
		r.Get("/events", h.Events)

		r.Get("/curses", h.BatchCurses)
		r.Get("/curses/{team}", h.TeamCurses)
		r.Get("/curses/{team}/worst", h.WorstCurse)
		r.Get("/context/{team}", h.GameContext)

		r.Get("/rivals", h.ListRivals)
		r.Put("/rivals", h.ReplaceRivals)
		r.Delete("/rivals", h.ClearRivals)
		r.Post("/rivals/{team}/toggle", h.ToggleRival)

		if cfg.Proxy != nil {
			r.Method(nethttp.MethodGet, "/nhl/*", cfg.Proxy)
		}
	})

	if cfg.Admin != nil {
		r.Post("/admin/snapshots/refresh", cfg.Admin.RefreshSnapshots)
	}
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         300,
	}
}
