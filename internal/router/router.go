package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "qms-backend/internal/adapters/storage/memory"
	_ "qms-backend/internal/docs"
	"qms-backend/internal/domain/analytics"
	"qms-backend/internal/domain/events"
	"qms-backend/internal/middleware"
	"qms-backend/internal/platform/logger"
	"qms-backend/internal/ports/enrichment"
)

type Options struct {
	// Opcional: si es nil, in-memory.
	Events events.Repository

	// Opcional: si es nil, /ai/analyze responde sin narrativa.
	Enricher enrichment.Enricher

	Logger logger.Logger

	// Vacío = "*".
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"qms-backend"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	eventRepo := opts.Events
	if eventRepo == nil {
		eventRepo = mem.NewEventRepo()
	}

	// Services por módulo
	eventsSvc := events.NewService(eventRepo)
	dispatcher := analytics.NewDispatcher(analytics.NewEngine(eventRepo), opts.Enricher, log)

	// Rutas por módulo
	events.RegisterRoutes(r, eventsSvc)
	analytics.RegisterRoutes(r, dispatcher)

	return r
}
