package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tutobot pipeline.
type Config struct {
	Library   LibraryConfig   `yaml:"library"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LibraryConfig describes the directory of pre-existing documents.
type LibraryConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns"`
}

// EmbeddingConfig holds embedding model configuration.
type EmbeddingConfig struct {
	Model         string `yaml:"model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	Dimension     int    `yaml:"dimension"`
	MaxSegmentLen int    `yaml:"max_segment_len"` // runes per embedded text
	TimeoutSecs   int    `yaml:"timeout_secs"`
	CachePath     string `yaml:"cache_path"`
	CacheEnabled  bool   `yaml:"cache_enabled"`
}

// Timeout returns the embedding call timeout.
func (c EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ChatConfig holds chat-completion model configuration.
type ChatConfig struct {
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// Timeout returns the chat call timeout.
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// SynthesisConfig bounds the prompt fed to the chat model.
type SynthesisConfig struct {
	ContextBudget int `yaml:"context_budget"` // runes of retrieved context per call
}

// OutputConfig holds PDF rendering configuration.
type OutputConfig struct {
	Title string `yaml:"title"`
	Dir   string `yaml:"dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Dir:      "docs",
			Patterns: []string{"**/*.pdf"},
		},
		Embedding: EmbeddingConfig{
			Model:         "text-embedding-3-small",
			APIKeyEnv:     "OPENAI_API_KEY",
			Dimension:     1536,
			MaxSegmentLen: 6000,
			TimeoutSecs:   30,
			CachePath:     ".tutobot/embeddings.db",
			CacheEnabled:  true,
		},
		Chat: ChatConfig{
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			TimeoutSecs: 60,
		},
		Retrieve: RetrieveConfig{
			TopK: 4,
		},
		Synthesis: SynthesisConfig{
			ContextBudget: 12000,
		},
		Output: OutputConfig{
			Title: "Generated Document",
			Dir:   ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// for anything the file does not set.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// tutobot.yaml, then .tutobot/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tutobot.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tutobot", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads a .env file from dir if one exists. Missing files are
// not an error; API keys may already be in the environment.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// EnsureStateDir ensures the .tutobot directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".tutobot"), 0755)
}

// CachePath returns the absolute embedding cache path under dir.
func CachePath(dir string, cfg *Config) string {
	if filepath.IsAbs(cfg.Embedding.CachePath) {
		return cfg.Embedding.CachePath
	}
	return filepath.Join(dir, cfg.Embedding.CachePath)
}
