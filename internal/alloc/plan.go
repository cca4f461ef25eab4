package alloc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"harmonicd/pkg/types"
)

// DefaultPlanPath is where SavePlan writes when given an empty path.
const DefaultPlanPath = "~/.harmonic_stack/config.yaml"

// planDocument is the persisted configuration layout consumed by launch
// tooling: a hardware block, a per-model allocation block, and the
// environment overrides to export before starting the server.
type planDocument struct {
	Hardware   planHardware             `yaml:"hardware"`
	Allocation map[string]planAllocated `yaml:"allocation"`
	Env        map[string]string        `yaml:"env"`
}

type planHardware struct {
	Profile      string  `yaml:"profile"`
	Name         string  `yaml:"name"`
	GPUMemGB     float64 `yaml:"gpu_mem_gb"`
	PeakParallel int     `yaml:"peak_parallel"`
	MaxParallel  int     `yaml:"max_parallel"`
}

type planAllocated struct {
	Parallel int     `yaml:"parallel"`
	MemoryGB float64 `yaml:"memory_gb"`
	Tier     int     `yaml:"tier"`
	Source   string  `yaml:"source"`
	Status   string  `yaml:"status,omitempty"`
}

// SavePlan writes the plan as a YAML configuration document, creating parent
// directories as needed. Returns the resolved path written.
func SavePlan(plan types.AllocationPlan, path string) (string, error) {
	if path == "" {
		path = DefaultPlanPath
	}
	p, err := expandHome(path)
	if err != nil {
		return "", err
	}
	doc := planDocument{
		Hardware: planHardware{
			Profile:      plan.Hardware.ID,
			Name:         plan.Hardware.Name,
			GPUMemGB:     plan.Hardware.GPUMemGB,
			PeakParallel: plan.Hardware.PeakParallel,
			MaxParallel:  plan.Hardware.MaxParallel,
		},
		Allocation: make(map[string]planAllocated, len(plan.Entries)),
		Env:        plan.Env,
	}
	for _, e := range plan.Entries {
		status := ""
		if e.Status == StatusSkipped {
			status = StatusSkipped
		}
		doc.Allocation[e.Model] = planAllocated{
			Parallel: e.Parallel,
			MemoryGB: e.MemoryGB,
			Tier:     e.Tier,
			Source:   e.Source,
			Status:   status,
		}
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}
	return p, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
