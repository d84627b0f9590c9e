// ABOUTME: Centralized configuration for the career chatbot
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jacob/career-chatbot/internal/models"
)

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// HuggingFaceBaseURL is the OpenAI-compatible router used when only a
// HuggingFace token is configured.
const HuggingFaceBaseURL = "https://router.huggingface.co/v1"

// Config holds all configuration for the chatbot.
type Config struct {
	// Storage settings
	Backend string
	DataDir string

	// Charm settings (Backend == "charm")
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Model endpoint settings
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	VectorDim      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Chunking settings (characters)
	ChunkMaxChars int
	ChunkOverlap  int

	// Retrieval settings
	TopK            int
	MinScore        float64
	AdjacentOverlap float64

	// Prompt assembly settings
	ContextBudgetChars int

	// Generation settings
	Temperature   float32
	MaxTokens     int
	StopSequences []string

	// Persona settings
	PersonaName     string
	PersonaHeadline string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:            getEnv("CHATBOT_BACKEND", BackendSQLite),
		DataDir:            os.Getenv("CHATBOT_DATA_DIR"),
		CharmHost:          getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:        getEnv("CHARM_DB", "career-chatbot"),
		AutoSync:           getEnvBool("CHARM_AUTO_SYNC", true),
		APIKey:             os.Getenv("OPENAI_API_KEY"),
		BaseURL:            os.Getenv("CHATBOT_BASE_URL"),
		ChatModel:          getEnv("CHATBOT_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:     getEnv("CHATBOT_EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDim:          getEnvInt("CHATBOT_VECTOR_DIMENSION", 1536),
		Timeout:            getEnvDuration("CHATBOT_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("CHATBOT_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("CHATBOT_RETRY_DELAY", 2*time.Second),
		ChunkMaxChars:      getEnvInt("CHATBOT_CHUNK_SIZE", 1000),
		ChunkOverlap:       getEnvInt("CHATBOT_CHUNK_OVERLAP", 200),
		TopK:               getEnvInt("CHATBOT_TOP_K", 3),
		MinScore:           getEnvFloat("CHATBOT_MIN_SCORE", 0.0),
		AdjacentOverlap:    getEnvFloat("CHATBOT_ADJACENT_OVERLAP", 0.5),
		ContextBudgetChars: getEnvInt("CHATBOT_CONTEXT_BUDGET", 6000),
		Temperature:        float32(getEnvFloat("CHATBOT_TEMPERATURE", 0.7)),
		MaxTokens:          getEnvInt("CHATBOT_MAX_TOKENS", 512),
		StopSequences:      getEnvList("CHATBOT_STOP_SEQUENCES"),
		PersonaName:        getEnv("CHATBOT_PERSONA_NAME", "Candidate"),
		PersonaHeadline:    os.Getenv("CHATBOT_PERSONA_HEADLINE"),
	}

	// The original deployment used the HuggingFace router; keep that as a
	// fallback when only a HuggingFace token is present.
	if cfg.APIKey == "" {
		if token := os.Getenv("HUGGINGFACE_API_TOKEN"); token != "" {
			cfg.APIKey = token
			if cfg.BaseURL == "" {
				cfg.BaseURL = HuggingFaceBaseURL
			}
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges for everything that would otherwise fail deep
// inside a turn. Misconfiguration is fatal at startup, never per-turn.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendCharm:
	default:
		return fmt.Errorf("%w: CHATBOT_BACKEND must be one of memory|sqlite|charm, got %q", models.ErrInvalidConfig, c.Backend)
	}
	if c.ChunkMaxChars <= 0 {
		return fmt.Errorf("%w: CHATBOT_CHUNK_SIZE must be positive, got %d", models.ErrInvalidConfig, c.ChunkMaxChars)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkMaxChars {
		return fmt.Errorf("%w: CHATBOT_CHUNK_OVERLAP must be in [0, chunk size), got %d", models.ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: CHATBOT_TOP_K must be positive, got %d", models.ErrInvalidConfig, c.TopK)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("%w: CHATBOT_MIN_SCORE must be 0-1, got %f", models.ErrInvalidConfig, c.MinScore)
	}
	if c.AdjacentOverlap < 0 || c.AdjacentOverlap > 1 {
		return fmt.Errorf("%w: CHATBOT_ADJACENT_OVERLAP must be 0-1, got %f", models.ErrInvalidConfig, c.AdjacentOverlap)
	}
	if c.ContextBudgetChars <= 0 {
		return fmt.Errorf("%w: CHATBOT_CONTEXT_BUDGET must be positive, got %d", models.ErrInvalidConfig, c.ContextBudgetChars)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("%w: CHATBOT_MAX_RETRIES must be 0-10, got %d", models.ErrInvalidConfig, c.MaxRetries)
	}
	if c.VectorDim <= 0 {
		return fmt.Errorf("%w: CHATBOT_VECTOR_DIMENSION must be positive, got %d", models.ErrInvalidConfig, c.VectorDim)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: CHATBOT_MAX_TOKENS must be positive, got %d", models.ErrInvalidConfig, c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: CHATBOT_TEMPERATURE must be 0-2, got %f", models.ErrInvalidConfig, c.Temperature)
	}
	return nil
}

// Persona builds the candidate persona from config.
func (c *Config) Persona() models.Persona {
	p := models.DefaultPersona()
	if c.PersonaName != "" {
		p.Name = c.PersonaName
	}
	p.Headline = c.PersonaHeadline
	return p
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
