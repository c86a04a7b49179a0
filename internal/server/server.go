package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rishabhrd09/als-diet-tracker/internal/config"
	"github.com/rishabhrd09/als-diet-tracker/internal/handlers"
	"github.com/rishabhrd09/als-diet-tracker/internal/metrics"
	"github.com/rishabhrd09/als-diet-tracker/internal/repository"
	"github.com/rishabhrd09/als-diet-tracker/internal/services"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config) *Server {
	formulaRepo := repository.NewFormulaRepository(database)
	templateRepo := repository.NewTemplateRepository(database)
	recordRepo := repository.NewRecordRepository(database)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	syncMetrics := metrics.NewSyncMetrics(registry)

	observer := services.MultiObserver{services.NewLogObserver(), syncMetrics}
	syncService := services.NewSyncService(templateRepo, formulaRepo, recordRepo, observer)
	recordService := services.NewRecordService(recordRepo, formulaRepo, syncService)
	catalogService := services.NewCatalogService(formulaRepo, templateRepo)
	feedService := services.NewFeedService(catalogService)

	recordHandler := handlers.NewRecordHandler(recordService)
	templateHandler := handlers.NewTemplateHandler(catalogService)
	formulaHandler := handlers.NewFormulaHandler(catalogService)
	feedHandler := handlers.NewFeedHandler(feedService, cfg.FeedToken)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Get("/feed.ics", feedHandler.Feed)

	router.Route("/api", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", recordHandler.List)
			r.Post("/", recordHandler.Create)
			r.Get("/next", recordHandler.NextFeed)
			r.Get("/{id}", recordHandler.Get)
			r.Put("/{id}", recordHandler.Update)
			r.Delete("/{id}", recordHandler.Delete)
			r.Post("/{id}/administer", recordHandler.MarkAdministered)
			r.Post("/{id}/skip", recordHandler.MarkSkipped)
			r.Post("/{id}/pending", recordHandler.MarkPending)
		})

		r.Get("/summary", recordHandler.Summary)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templateHandler.List)
			r.Post("/", templateHandler.Create)
			r.Get("/{id}", templateHandler.Get)
			r.Put("/{id}", templateHandler.Update)
			r.Delete("/{id}", templateHandler.Delete)
		})

		r.Route("/formulas", func(r chi.Router) {
			r.Get("/", formulaHandler.List)
			r.Post("/", formulaHandler.Create)
			r.Get("/{id}", formulaHandler.Get)
			r.Put("/{id}", formulaHandler.Update)
			r.Delete("/{id}", formulaHandler.Delete)
		})
	})

	return &Server{router: router, config: cfg}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}

// Handler exposes the assembled router, mainly for tests.
func (server *Server) Handler() http.Handler {
	return server.router
}
