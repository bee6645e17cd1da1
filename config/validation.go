package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("server_port", cfg.ServerPort)
	require("jwt_secret", cfg.JWTSecret)

	switch cfg.DBDriver {
	case DriverPostgres:
		require("db_host", cfg.DBHost)
		require("db_port", cfg.DBPort)
		require("db_user", cfg.DBUser)
		require("db_name", cfg.DBName)
		if cfg.Environment == Production || cfg.Environment == CI {
			require("db_password", cfg.DBPassword)
		}
	case DriverSQLite:
		require("sqlite_path", cfg.SQLitePath)
	default:
		errs = append(errs, ValidationError{
			Field:   "db_driver",
			Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver),
		})
	}

	// Tests run against a fake generator
	if cfg.Environment != Test {
		require("gemini_api_key", cfg.GeminiAPIKey)
	}

	if cfg.Environment == Production && cfg.JWTSecret == "development-secret" {
		errs = append(errs, ValidationError{Field: "jwt_secret", Message: "must not use the development default"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
