package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level finbook.yaml configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Assistant AssistantConfig `yaml:"assistant"`
	Git       GitConfig       `yaml:"git"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects the backing store.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "memory" or "postgres"
	DSN     string `yaml:"dsn,omitempty"`
}

// AssistantConfig selects how chat replies are produced.
type AssistantConfig struct {
	Mode          string   `yaml:"mode"` // "local" or "bridge"
	Command       string   `yaml:"command,omitempty"`
	Args          []string `yaml:"args,omitempty"`
	TranscriptDir string   `yaml:"transcript_dir,omitempty"`
}

// GitConfig controls git versioning of exports.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a finbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8086",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Assistant: AssistantConfig{
			Mode:          "local",
			TranscriptDir: ".",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Finbook",
			AuthorEmail: "finbook@localhost",
		},
	}
}

// Validate rejects configurations the serve command cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Assistant.Mode {
	case "local":
	case "bridge":
		if c.Assistant.Command == "" {
			return fmt.Errorf("assistant.command is required for bridge mode")
		}
	default:
		return fmt.Errorf("unknown assistant mode %q", c.Assistant.Mode)
	}
	return nil
}
