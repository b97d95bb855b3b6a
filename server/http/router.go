package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"similarity-service/internal/config"
	"similarity-service/internal/gemini"
	"similarity-service/internal/middleware"
	"similarity-service/server/http/handlers"

	cmpHnd "similarity-service/internal/compare/handler"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	oracle := gemini.New(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		APIURL:  cfg.GeminiAPIURL,
		Timeout: cfg.GeminiTimeout,
	}, logger)

	// health-check
	r.Get("/health", handlers.Health(cfg))

	// основные эндпоинты
	r.Post("/compare", cmpHnd.Compare(oracle, logger))
	r.Post("/compare/files", cmpHnd.CompareFiles(oracle, logger))

	return r
}
