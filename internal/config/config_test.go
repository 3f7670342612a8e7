package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.AnswerCodeSystem != "http://example.org/answer-codes" {
		t.Errorf("unexpected answer code system %s", cfg.AnswerCodeSystem)
	}
	if cfg.MetadataExtensionURL != "http://example.org/questionnaire-metadata" {
		t.Errorf("unexpected metadata extension url %s", cfg.MetadataExtensionURL)
	}
	if n, err := cfg.BodyLimitBytes(); err != nil || n != 2<<20 {
		t.Errorf("expected 2M body limit, got %d (%v)", n, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ANSWER_CODE_SYSTEM", "https://codes.example.com/answers")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.AnswerCodeSystem != "https://codes.example.com/answers" {
		t.Errorf("unexpected answer code system %s", cfg.AnswerCodeSystem)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func validConfig() *Config {
	return &Config{
		Port:                 "8000",
		LogLevel:             "info",
		BodyLimit:            "1M",
		AnswerCodeSystem:     "http://example.org/answer-codes",
		MetadataExtensionURL: "http://example.org/questionnaire-metadata",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"bad body limit", func(c *Config) { c.BodyLimit = "lots" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty answer system", func(c *Config) { c.AnswerCodeSystem = "" }, true},
		{"relative extension url", func(c *Config) { c.MetadataExtensionURL = "questionnaire-metadata" }, true},
		{"urn extension url", func(c *Config) { c.MetadataExtensionURL = "urn:example:meta" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
