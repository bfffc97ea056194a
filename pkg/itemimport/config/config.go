package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	CatalogURL        string        `validate:"required,url"`
	HTTPTimeout       time.Duration `validate:"gt=0"`
	PauseEvery        int           `validate:"gte=0"`
	PauseFor          time.Duration `validate:"gte=0"`
	MaxReportedErrors int           `validate:"gte=0"`
	ErrorMessageLimit int           `validate:"gt=0"`
	SkipStock         bool
	Env               string `validate:"oneof=development production"`
	MetricsFile       string
}

// Load reads configuration from the environment after loading any .env
// files. Missing files are ignored.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	cfg := Config{
		CatalogURL:        getEnv("ITEMIMPORT_API_URL", "http://localhost:3001/api"),
		HTTPTimeout:       getDurationEnv("ITEMIMPORT_HTTP_TIMEOUT", 10*time.Second),
		PauseEvery:        getIntEnv("ITEMIMPORT_PAUSE_EVERY", 200),
		PauseFor:          getDurationEnv("ITEMIMPORT_PAUSE", 500*time.Millisecond),
		MaxReportedErrors: getIntEnv("ITEMIMPORT_MAX_ERRORS", 20),
		ErrorMessageLimit: getIntEnv("ITEMIMPORT_ERROR_LIMIT", 200),
		SkipStock:         getBoolEnv("ITEMIMPORT_SKIP_STOCK", false),
		Env:               getEnv("ITEMIMPORT_ENV", "development"),
		MetricsFile:       strings.TrimSpace(os.Getenv("ITEMIMPORT_METRICS_FILE")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getIntEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
