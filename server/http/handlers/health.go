package handlers

import (
	"encoding/json"
	"net/http"

	"similarity-service/internal/config"
)

// Health — проба состояния: жив ли сервис и настроен ли ключ Gemini.
// Внешних вызовов не делает.
func Health(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":            "healthy",
			"gemini_configured": cfg.GeminiAPIKey != "",
			"version":           config.Version,
		})
	}
}
