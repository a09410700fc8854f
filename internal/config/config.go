package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	Environment     string
	DatabaseURL     string
	InstitutionCode string
	AuditSink       string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     os.Getenv("APP_ENV"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		InstitutionCode: os.Getenv("INSTITUTION_CODE"),
		AuditSink:       os.Getenv("AUDIT_SINK"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var missing []string

	if c.Environment == "" {
		missing = append(missing, "APP_ENV")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.InstitutionCode == "" {
		missing = append(missing, "INSTITUTION_CODE")
	}

	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}

	if !isFiveDigits(c.InstitutionCode) {
		return errors.New("INSTITUTION_CODE must be exactly 5 digits")
	}

	// Audit output is mandatory once money moves in shared environments.
	if c.Environment == "production" || c.Environment == "staging" {
		if c.AuditSink == "" {
			return errors.New("missing required environment variable for " + c.Environment + ": AUDIT_SINK")
		}
	}

	return nil
}

func isFiveDigits(val string) bool {
	if len(val) != 5 {
		return false
	}
	for _, r := range val {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
