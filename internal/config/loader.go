package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string   `json:"addr" yaml:"addr" toml:"addr"`
	Profile         string   `json:"profile" yaml:"profile" toml:"profile"`
	GPUMemGB        float64  `json:"gpu_mem_gb" yaml:"gpu_mem_gb" toml:"gpu_mem_gb"`
	MinParallel     int      `json:"min_parallel" yaml:"min_parallel" toml:"min_parallel"`
	Models          []string `json:"models" yaml:"models" toml:"models"`
	CatalogPath     string   `json:"catalog_path" yaml:"catalog_path" toml:"catalog_path"`
	OperatorURL     string   `json:"operator_url" yaml:"operator_url" toml:"operator_url"`
	OperatorModel   string   `json:"operator_model" yaml:"operator_model" toml:"operator_model"`
	OperatorTimeout int      `json:"operator_timeout_sec" yaml:"operator_timeout_sec" toml:"operator_timeout_sec"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
