package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ehr/formbuilder/internal/domain/formbuilder"
	"github.com/ehr/formbuilder/internal/platform/fhirxml"
	"github.com/ehr/formbuilder/internal/platform/middleware"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	LogLevel             string   `mapstructure:"LOG_LEVEL"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	BodyLimit            string   `mapstructure:"BODY_LIMIT"`
	AnswerCodeSystem     string   `mapstructure:"ANSWER_CODE_SYSTEM"`
	MetadataExtensionURL string   `mapstructure:"METADATA_EXTENSION_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("BODY_LIMIT", "2M")
	v.SetDefault("ANSWER_CODE_SYSTEM", formbuilder.DefaultAnswerCodeSystem)
	v.SetDefault("METADATA_EXTENSION_URL", fhirxml.DefaultMetadataExtensionURL)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "CORS_ORIGINS", "BODY_LIMIT",
		"ANSWER_CODE_SYSTEM", "METADATA_EXTENSION_URL",
	} {
		_ = v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Comma-separated lists may carry spaces after the commas.
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	return cfg, nil
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

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// BodyLimitBytes returns BODY_LIMIT in bytes.
func (c *Config) BodyLimitBytes() (int64, error) {
	return middleware.ParseLimit(c.BodyLimit)
}

// ZerologLevel returns the parsed LOG_LEVEL.
func (c *Config) ZerologLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := c.BodyLimitBytes(); err != nil {
		return fmt.Errorf("BODY_LIMIT: %w", err)
	}
	if _, err := c.ZerologLevel(); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if err := requireAbsoluteURI("ANSWER_CODE_SYSTEM", c.AnswerCodeSystem); err != nil {
		return err
	}
	return requireAbsoluteURI("METADATA_EXTENSION_URL", c.MetadataExtensionURL)
}

func requireAbsoluteURI(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%s must be an absolute URI, got %q", key, value)
	}
	return nil
}
