package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"memories-backend/infrastructure/config"
	"memories-backend/interfaces/http/rest/handlers"
	"memories-backend/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	service handlers.MemoryService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(service handlers.MemoryService, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Authenticated API surface
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg, rt.logger))

		fileHandler := handlers.NewFileHandler(rt.service, rt.logger)
		r.Post("/files/presign", fileHandler.PresignUpload)

		memoryHandler := handlers.NewMemoryHandler(rt.service, rt.logger)
		r.Route("/memories", func(r chi.Router) {
			r.Post("/", memoryHandler.CreateMemory)
			r.Get("/", memoryHandler.ListMemories)
			r.Get("/{id}", memoryHandler.GetMemory)
			r.Delete("/{id}", memoryHandler.DeleteMemory)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
