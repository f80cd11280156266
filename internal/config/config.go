// Package config loads and validates the application configuration.
// One Config is constructed at process start and passed explicitly to
// constructors; nothing reads the environment at use sites.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ModelConfig configures the OpenAI-compatible model endpoint used for
// both chat completion and embeddings.
type ModelConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`

	// APIKey is resolved from the environment during Load, never from
	// the yaml file.
	APIKey string `yaml:"-"`
}

// KnowledgeConfig configures the knowledge base and chunking policy.
type KnowledgeConfig struct {
	Path         string `yaml:"path"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	Watch        bool   `yaml:"watch"`
}

// RetrievalConfig configures the retrieval gate.
type RetrievalConfig struct {
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float64 `yaml:"score_threshold"`
}

// StoreConfig selects the vector store implementation.
type StoreConfig struct {
	Type string `yaml:"type"` // "memory" or "sqlite"
	Path string `yaml:"path"` // data directory for the sqlite store
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Model     ModelConfig     `yaml:"model"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Store     StoreConfig     `yaml:"store"`
}

// Load reads the config from path, falling back to defaults when the
// file does not exist. A .env file in the working directory is loaded
// first so the API key can live there during development.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)
	cfg.Model.APIKey = os.Getenv(cfg.Model.APIKeyEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration errors instead of letting them
// surface at arbitrary use sites.
func (c *Config) Validate() error {
	if c.Model.APIKey == "" {
		return fmt.Errorf("%s environment variable is not set", c.Model.APIKeyEnv)
	}
	if c.Knowledge.Path == "" {
		return errors.New("knowledge.path must not be empty")
	}
	if c.Knowledge.ChunkOverlap >= c.Knowledge.ChunkSize {
		return fmt.Errorf("knowledge.chunk_overlap (%d) must be smaller than knowledge.chunk_size (%d)",
			c.Knowledge.ChunkOverlap, c.Knowledge.ChunkSize)
	}
	if c.Retrieval.ScoreThreshold < 0 || c.Retrieval.ScoreThreshold > 1 {
		return fmt.Errorf("retrieval.score_threshold (%g) must be in [0,1]", c.Retrieval.ScoreThreshold)
	}
	if c.Store.Type != "memory" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be \"memory\" or \"sqlite\", got %q", c.Store.Type)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Model: ModelConfig{
			APIKeyEnv:      "OPENAI_API_KEY",
			ChatModel:      "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
		},
		Knowledge: KnowledgeConfig{
			Path:         "product_info.txt",
			ChunkSize:    500,
			ChunkOverlap: 50,
			Watch:        true,
		},
		Retrieval: RetrievalConfig{
			TopK:           3,
			ScoreThreshold: 0.4,
		},
		Store: StoreConfig{
			Type: "memory",
			Path: "./data",
		},
	}
}

// applyDefaults re-fills fields a partial yaml file left zeroed.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = def.Server.AllowedOrigins
	}
	if cfg.Model.APIKeyEnv == "" {
		cfg.Model.APIKeyEnv = def.Model.APIKeyEnv
	}
	if cfg.Model.ChatModel == "" {
		cfg.Model.ChatModel = def.Model.ChatModel
	}
	if cfg.Model.EmbeddingModel == "" {
		cfg.Model.EmbeddingModel = def.Model.EmbeddingModel
	}
	if cfg.Knowledge.Path == "" {
		cfg.Knowledge.Path = def.Knowledge.Path
	}
	if cfg.Knowledge.ChunkSize == 0 {
		cfg.Knowledge.ChunkSize = def.Knowledge.ChunkSize
	}
	if cfg.Knowledge.ChunkOverlap == 0 {
		cfg.Knowledge.ChunkOverlap = def.Knowledge.ChunkOverlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.ScoreThreshold == 0 {
		cfg.Retrieval.ScoreThreshold = def.Retrieval.ScoreThreshold
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = def.Store.Path
	}
}
