package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultPort is used when neither an argument nor PROBGEN_PORT names one.
const DefaultPort = 8000

// Config is the HTTP server configuration.
type Config struct {
	Port        int      `validate:"min=1,max=65535"`
	CORSOrigins []string `validate:"min=1,dive,required"`

	// LogBodies logs request and response bodies in the access log.
	LogBodies bool
	Debug     bool
}

// LoadDotEnv reads .env from the working directory into the process
// environment. It reports whether a file was loaded; existing variables
// are never overridden.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// FromEnv builds a Config from PROBGEN_* variables and validates it.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		CORSOrigins: []string{"*"},
		LogBodies:   true,
	}

	var errs []error

	if v := os.Getenv("PROBGEN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PROBGEN_PORT: %w", err))
		} else {
			cfg.Port = port
		}
	}

	if v := os.Getenv("PROBGEN_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	if v := os.Getenv("PROBGEN_LOG_BODIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PROBGEN_LOG_BODIES: %w", err))
		} else {
			cfg.LogBodies = b
		}
	}

	if v := os.Getenv("PROBGEN_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PROBGEN_DEBUG: %w", err))
		} else {
			cfg.Debug = b
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, cfg.Validate()
}

var validate = validator.New()

// Validate checks the struct tags on Config.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
