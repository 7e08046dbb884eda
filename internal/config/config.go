// Package config loads the application configuration from a YAML file and
// watches the retention rules file for hot-reload.
package config

// #region imports
import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// #endregion imports

// #region types

// Config is the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Generator GeneratorConfig `yaml:"generator"`
	Index     IndexConfig     `yaml:"index"`
	Log       LogConfig       `yaml:"log"`
}

// DataConfig locates the data files the router depends on.
type DataConfig struct {
	RulesPath     string `yaml:"rules_path"`
	PlaybookPath  string `yaml:"playbook_path"`
	PoliciesDir   string `yaml:"policies_dir"`
	CustomersCSV  string `yaml:"customers_csv"`
	StatePath     string `yaml:"state_path"`
	RulesDebounce int    `yaml:"rules_debounce_ms"`
}

// GeneratorConfig configures the text generation backend.
type GeneratorConfig struct {
	Backend   string        `yaml:"backend"` // "anthropic" or "scripted"
	Model     string        `yaml:"model"`
	MaxTokens int64         `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// IndexConfig configures document chunking for the policy index.
type IndexConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// #endregion types

// #region defaults

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Data: DataConfig{
			RulesPath:     "data/retention_rules.json",
			PlaybookPath:  "data/retention_playbook.md",
			PoliciesDir:   "data/policies",
			CustomersCSV:  "data/customers.csv",
			StatePath:     "supportflow.db",
			RulesDebounce: 500,
		},
		Generator: GeneratorConfig{
			Backend:   "anthropic",
			MaxTokens: 1024,
			Timeout:   30 * time.Second,
		},
		Index: IndexConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// #endregion defaults

// #region load

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Generator.Backend {
	case "anthropic", "scripted":
	default:
		return fmt.Errorf("unknown generator backend %q", c.Generator.Backend)
	}
	if c.Index.ChunkSize <= 0 {
		return fmt.Errorf("index chunk_size must be positive, got %d", c.Index.ChunkSize)
	}
	if c.Index.ChunkOverlap < 0 || c.Index.ChunkOverlap >= c.Index.ChunkSize {
		return fmt.Errorf("index chunk_overlap %d must be in [0, chunk_size)", c.Index.ChunkOverlap)
	}
	if c.Data.RulesPath == "" {
		return fmt.Errorf("data rules_path cannot be empty")
	}
	return nil
}

// #endregion load
