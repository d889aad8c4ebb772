package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/vocaquiz/internal/logger"
)

// Word store backends.
const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// minSessionSecret is the shortest accepted cookie authentication key.
const minSessionSecret = 32

type Config struct {
	Addr                 string
	LogLevel             string
	StoreBackend         string
	DBPath               string
	SheetURL             string
	SheetCredentialsJSON string
	SheetTab             string
	SessionSecret        string
	SessionDir           string
	QuizMaxQuestions     int
	RegisterRows         int
	CacheTTL             time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		StoreBackend:         strings.ToLower(envOr("STORE_BACKEND", BackendSQLite)),
		DBPath:               envOr("DB_PATH", "file:vocaquiz.db"),
		SheetURL:             os.Getenv("SHEET_URL"),
		SheetCredentialsJSON: os.Getenv("SHEET_CREDENTIALS_JSON"),
		SheetTab:             os.Getenv("SHEET_TAB"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionDir:           os.Getenv("SESSION_DIR"),
		QuizMaxQuestions:     envIntOr("QUIZ_MAX_QUESTIONS", 20),
		RegisterRows:         envIntOr("REGISTER_ROWS", 10),
		CacheTTL:             envDurationOr("CACHE_TTL", 5*time.Minute),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}

	switch c.StoreBackend {
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			problems = append(problems, "DB_PATH cannot be empty")
		}
	case BackendSheets:
		if strings.TrimSpace(c.SheetURL) == "" {
			problems = append(problems, "SHEET_URL is required when STORE_BACKEND=sheets")
		}
		if strings.TrimSpace(c.SheetCredentialsJSON) == "" {
			problems = append(problems, "SHEET_CREDENTIALS_JSON is required when STORE_BACKEND=sheets")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be %q or %q (got %q)", BackendSQLite, BackendSheets, c.StoreBackend))
	}

	if len(c.SessionSecret) < minSessionSecret {
		problems = append(problems, fmt.Sprintf("SESSION_SECRET must be at least %d bytes", minSessionSecret))
	}
	if c.QuizMaxQuestions < 1 {
		problems = append(problems, "QUIZ_MAX_QUESTIONS must be at least 1")
	}
	if c.RegisterRows < 1 {
		problems = append(problems, "REGISTER_ROWS must be at least 1")
	}
	if c.CacheTTL < 0 {
		problems = append(problems, "CACHE_TTL cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
