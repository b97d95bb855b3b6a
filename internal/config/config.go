package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version отдаётся health-пробой.
const Version = "3.0"

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	GeminiAPIKey  string // пусто = анализатор не настроен, отдаём заглушки
	GeminiAPIURL  string // переопределяется в тестах
	GeminiTimeout time.Duration
}

func Load() Config {
	// .env подхватываем, если лежит рядом; реальное окружение главнее
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8080"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	timeoutSec, _ := strconv.Atoi(getenv("GEMINI_TIMEOUT_SEC", "30"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")

	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          port,
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFile:       getenv("LOG_FILE", "logs/similarity-service.log"),
		MaxUploadMB:   mb,
		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiAPIURL:  getenv("GEMINI_API_URL", ""),
		GeminiTimeout: time.Duration(timeoutSec) * time.Second,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
