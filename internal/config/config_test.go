// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Verifies env overrides, defaults, and startup-fatal ranges
package config

import (
	"errors"
	"testing"
	"time"

	"github.com/jacob/career-chatbot/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear out anything set in the environment
	for _, key := range []string{
		"CHATBOT_BACKEND", "CHATBOT_CHUNK_SIZE", "CHATBOT_CHUNK_OVERLAP",
		"CHATBOT_TOP_K", "CHATBOT_MIN_SCORE", "CHATBOT_CONTEXT_BUDGET",
		"CHATBOT_MAX_RETRIES", "CHATBOT_TIMEOUT", "OPENAI_API_KEY",
		"HUGGINGFACE_API_TOKEN", "CHATBOT_BASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.ChunkMaxChars != 1000 || cfg.ChunkOverlap != 200 {
		t.Errorf("chunking defaults = %d/%d, want 1000/200", cfg.ChunkMaxChars, cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.MinScore != 0 {
		t.Errorf("MinScore = %f, want 0", cfg.MinScore)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.VectorDim != 1536 {
		t.Errorf("VectorDim = %d, want 1536", cfg.VectorDim)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHATBOT_BACKEND", "memory")
	t.Setenv("CHATBOT_CHUNK_SIZE", "200")
	t.Setenv("CHATBOT_CHUNK_OVERLAP", "20")
	t.Setenv("CHATBOT_STOP_SEQUENCES", "User:, Recruiter:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Backend)
	}
	if cfg.ChunkMaxChars != 200 || cfg.ChunkOverlap != 20 {
		t.Errorf("chunking = %d/%d, want 200/20", cfg.ChunkMaxChars, cfg.ChunkOverlap)
	}
	if len(cfg.StopSequences) != 2 || cfg.StopSequences[0] != "User:" {
		t.Errorf("StopSequences = %v", cfg.StopSequences)
	}
}

func TestLoad_HuggingFaceFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CHATBOT_BASE_URL", "")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf_test_token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "hf_test_token" {
		t.Errorf("APIKey = %q, want HuggingFace token", cfg.APIKey)
	}
	if cfg.BaseURL != HuggingFaceBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, HuggingFaceBaseURL)
	}
}

func TestValidate_Invalid(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Backend:            BackendMemory,
			ChunkMaxChars:      1000,
			ChunkOverlap:       200,
			TopK:               3,
			AdjacentOverlap:    0.5,
			ContextBudgetChars: 6000,
			MaxRetries:         3,
			VectorDim:          1536,
			MaxTokens:          512,
			Temperature:        0.7,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Backend = "redis" }},
		{"overlap >= chunk size", func(c *Config) { c.ChunkOverlap = 1000 }},
		{"zero chunk size", func(c *Config) { c.ChunkMaxChars = 0 }},
		{"zero top-k", func(c *Config) { c.TopK = 0 }},
		{"min score above 1", func(c *Config) { c.MinScore = 1.5 }},
		{"zero budget", func(c *Config) { c.ContextBudgetChars = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"excess retries", func(c *Config) { c.MaxRetries = 11 }},
		{"zero dimension", func(c *Config) { c.VectorDim = 0 }},
		{"temperature out of range", func(c *Config) { c.Temperature = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, models.ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPersona(t *testing.T) {
	cfg := &Config{PersonaName: "Jacob", PersonaHeadline: "ADAS engineer"}
	p := cfg.Persona()
	if p.Name != "Jacob" || p.Headline != "ADAS engineer" {
		t.Errorf("Persona = %+v", p)
	}
	if p.Instructions == "" {
		t.Error("Instructions should carry the default candidate prompt")
	}
}
