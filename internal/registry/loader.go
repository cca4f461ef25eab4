package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"harmonicd/pkg/types"
)

// catalogFile is the on-disk overlay format: extra models and/or profiles
// merged over the built-in tables.
type catalogFile struct {
	Models   []types.ModelSpec       `yaml:"models"`
	Profiles []types.HardwareProfile `yaml:"profiles"`
}

// LoadFile reads a YAML catalog overlay and returns a Registry combining the
// built-in tables with the file's entries. File entries win on name clashes.
func LoadFile(path string) (*Registry, error) {
	p, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", filepath.Base(p), err)
	}
	models := append(DefaultModels(), cf.Models...)
	profiles := append(DefaultProfiles(), cf.Profiles...)
	return New(models, profiles), nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/.harmonic_stack/catalog.yaml
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
