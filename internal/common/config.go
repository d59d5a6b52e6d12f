package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Xray        XrayConfig    `toml:"xray"`
	Jira        JiraConfig    `toml:"jira"`
	Logging     LoggingConfig `toml:"logging"`
}

// XrayConfig holds connection settings for the Xray GraphQL service.
type XrayConfig struct {
	BaseURL      string `toml:"base_url" validate:"required,url"`
	ClientID     string `toml:"client_id" validate:"required"`
	ClientSecret string `toml:"client_secret" validate:"required"`
	RateLimit    int    `toml:"rate_limit"` // requests per second (default: 5)
}

// JiraConfig holds connection settings for the Jira REST API.
type JiraConfig struct {
	BaseURL  string `toml:"base_url" validate:"required,url"`
	Username string `toml:"username"`
	APIToken string `toml:"api_token"`
	// LinkTypeName overrides fuzzy discovery of the "tests" relationship
	// type with an exact catalog name. Empty means discover.
	LinkTypeName string `toml:"link_type_name"`
	// ProjectKey is the default project for created test issues.
	ProjectKey string `toml:"project_key"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// Timeouts are fixed per call class rather than configured: tracker
// metadata/lookup and auth calls are bounded at 5s, GraphQL calls at 10s.
const (
	AuthTimeout    = 5 * time.Second
	JiraTimeout    = 5 * time.Second
	GraphQLTimeout = 10 * time.Second

	TokenValidity = time.Hour
)

// DefaultConfig returns the configuration defaults applied before any file
// or environment override.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Xray: XrayConfig{
			BaseURL:   "https://xray.cloud.getxray.app",
			RateLimit: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applies environment
// overrides for secrets, and validates the result. A missing file is not
// an error when env vars supply everything required.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variables over file values.
// Secrets are expected to arrive this way in deployed environments.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PROBATIO_XRAY_CLIENT_ID"); v != "" {
		config.Xray.ClientID = v
	}
	if v := os.Getenv("PROBATIO_XRAY_CLIENT_SECRET"); v != "" {
		config.Xray.ClientSecret = v
	}
	if v := os.Getenv("PROBATIO_XRAY_BASE_URL"); v != "" {
		config.Xray.BaseURL = v
	}
	if v := os.Getenv("PROBATIO_JIRA_BASE_URL"); v != "" {
		config.Jira.BaseURL = v
	}
	if v := os.Getenv("PROBATIO_JIRA_USERNAME"); v != "" {
		config.Jira.Username = v
	}
	if v := os.Getenv("PROBATIO_JIRA_API_TOKEN"); v != "" {
		config.Jira.APIToken = v
	}
}

func validateConfig(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				return fmt.Errorf("invalid configuration: %s failed %q validation", verr.Namespace(), verr.Tag())
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Xray.RateLimit <= 0 {
		config.Xray.RateLimit = 5
	}

	return nil
}
