package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the single configuration record for the whole process. It is
// built once in main and passed into every component; nothing reads the
// environment after Load returns.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	Plan    PlanConfig    `yaml:"plan"`
	RAG     RAGConfig     `yaml:"rag"`
	Memory  MemoryConfig  `yaml:"memory"`
	Gateway GatewayConfig `yaml:"gateway"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "deepseek" or "openai"
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type SearchConfig struct {
	SerperAPIKey   string `yaml:"serper_api_key,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxResults     int    `yaml:"max_results"`
}

type PlanConfig struct {
	MinHours     int `yaml:"min_hours"`
	MaxHours     int `yaml:"max_hours"`
	DefaultHours int `yaml:"default_hours"`
}

type RAGConfig struct {
	EmbeddingModel string  `yaml:"embedding_model"`
	RetrievalK     int     `yaml:"retrieval_k"`
	ScoreThreshold float32 `yaml:"score_threshold"`
	ChunkSize      int     `yaml:"chunk_size"`
	ChunkOverlap   int     `yaml:"chunk_overlap"`
	DocsDir        string  `yaml:"docs_dir"`
}

type MemoryConfig struct {
	Path string `yaml:"path"`
}

type GatewayConfig struct {
	TelegramToken string `yaml:"telegram_token,omitempty"`
	Enabled       bool   `yaml:"enabled"`
}

// Default returns a Config populated with working defaults. Every loader
// starts from here so a missing config file is never fatal.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "deepseek",
			Model:       "deepseek-chat",
			BaseURL:     "https://api.deepseek.com/v1",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Search: SearchConfig{
			TimeoutSeconds: 30,
			MaxResults:     20,
		},
		Plan: PlanConfig{
			MinHours:     5,
			MaxHours:     200,
			DefaultHours: 30,
		},
		RAG: RAGConfig{
			EmbeddingModel: "text-embedding-3-small",
			RetrievalK:     3,
			ScoreThreshold: 0.5,
			ChunkSize:      500,
			ChunkOverlap:   50,
			DocsDir:        "./documents",
		},
		Memory: MemoryConfig{
			Path: "gurukul.db",
		},
	}
}

// Load reads an optional YAML file on top of the defaults, then applies
// environment overrides. A missing file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" && c.LLM.Provider == "deepseek" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SERPER_API_KEY"); v != "" {
		c.Search.SerperAPIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Gateway.TelegramToken = v
		c.Gateway.Enabled = true
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.LLM.Temperature = f
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LLM.MaxTokens = n
		}
	}
}

// Validate normalizes out-of-range values rather than failing on them.
// Missing API keys are deliberately not an error: the affected components
// run in degraded mode instead.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "deepseek", "openai":
	case "":
		c.LLM.Provider = "deepseek"
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	if c.Plan.MinHours < 1 {
		c.Plan.MinHours = 1
	}
	if c.Plan.MaxHours < c.Plan.MinHours {
		c.Plan.MaxHours = c.Plan.MinHours
	}
	if c.Plan.DefaultHours < c.Plan.MinHours {
		c.Plan.DefaultHours = c.Plan.MinHours
	}
	if c.Plan.DefaultHours > c.Plan.MaxHours {
		c.Plan.DefaultHours = c.Plan.MaxHours
	}
	if c.Search.TimeoutSeconds < 1 {
		c.Search.TimeoutSeconds = 30
	}
	if c.Search.MaxResults < 1 {
		c.Search.MaxResults = 20
	}
	if c.RAG.RetrievalK < 1 {
		c.RAG.RetrievalK = 3
	}
	if c.RAG.ChunkSize < 1 {
		c.RAG.ChunkSize = 500
	}
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		c.RAG.ChunkOverlap = 0
	}
	return nil
}
