package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/overlayfmt/internal/logger"
)

type Config struct {
	Addr         string
	LogLevel     string
	LogColors    bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxPGNBytes  int64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("ADDR", ":8080"),
		LogLevel:     envOr("LOG_LEVEL", "INFO"),
		LogColors:    envBoolOr("LOG_COLORS", true),
		ReadTimeout:  time.Duration(envIntOr("READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(envIntOr("WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxPGNBytes:  int64(envIntOr("MAX_PGN_BYTES", 1<<20)),
	}
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.ReadTimeout <= 0 {
		problems = append(problems, "READ_TIMEOUT_SECONDS must be positive")
	}
	if c.WriteTimeout <= 0 {
		problems = append(problems, "WRITE_TIMEOUT_SECONDS must be positive")
	}
	if c.MaxPGNBytes <= 0 {
		problems = append(problems, "MAX_PGN_BYTES must be positive")
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

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
