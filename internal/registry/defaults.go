package registry

import "harmonicd/pkg/types"

// DefaultModels returns the built-in model catalog: role models grouped by
// tier plus the base models they are served from.
func DefaultModels() []types.ModelSpec {
	return []types.ModelSpec{
		// Tier 1: executive (max parallel)
		{Name: "executive", BaseGB: 2.5, KVGB: 0.3, Tier: 1, Source: "qwen3:4b"},
		{Name: "operator", BaseGB: 2.5, KVGB: 0.3, Tier: 1, Source: "qwen3:4b"},

		// Tier 2: directors (high parallel)
		{Name: "technical_director", BaseGB: 5.2, KVGB: 0.5, Tier: 2, Source: "qwen3:8b"},
		{Name: "research_director", BaseGB: 5.2, KVGB: 0.5, Tier: 2, Source: "qwen3:8b"},
		{Name: "creative_director", BaseGB: 5.2, KVGB: 0.5, Tier: 2, Source: "qwen3:8b"},

		// Tier 3: specialists (medium parallel)
		{Name: "analyst", BaseGB: 5.2, KVGB: 0.5, Tier: 3, Source: "qwen3:8b"},
		{Name: "coder", BaseGB: 9.3, KVGB: 0.8, Tier: 3, Source: "qwen3:14b"},

		// Tier 4: heavy (lower parallel, high capability)
		{Name: "architect", BaseGB: 18.0, KVGB: 1.2, Tier: 4, Source: "qwen3:30b-a3b"},

		// Base models for direct use
		{Name: "qwen3:4b", BaseGB: 2.5, KVGB: 0.3, Tier: 1, Source: "qwen3:4b"},
		{Name: "qwen3:8b", BaseGB: 5.2, KVGB: 0.5, Tier: 2, Source: "qwen3:8b"},
		{Name: "qwen3:14b", BaseGB: 9.3, KVGB: 0.8, Tier: 3, Source: "qwen3:14b"},
		{Name: "qwen3:30b-a3b", BaseGB: 18.0, KVGB: 1.2, Tier: 4, Source: "qwen3:30b-a3b"},
	}
}

// DefaultProfiles returns the built-in hardware profile table.
func DefaultProfiles() []types.HardwareProfile {
	return []types.HardwareProfile{
		{
			ID: "dgx_spark", Name: "NVIDIA DGX Spark (GB10)",
			GPUMemGB: 128, PeakParallel: 16, MaxParallel: 32, ReservePct: 0.15,
		},
		{
			ID: "evo_x2_92gb", Name: "AMD Ryzen AI MAX+ 395 (92GB GPU)",
			GPUMemGB: 92, PeakParallel: 12, MaxParallel: 16, ReservePct: 0.15,
			Env: map[string]string{"HSA_OVERRIDE_GFX_VERSION": "11.0.0"},
		},
		{
			ID: "evo_x2_64gb", Name: "AMD Ryzen AI MAX+ 395 (64GB GPU)",
			GPUMemGB: 64, PeakParallel: 8, MaxParallel: 12, ReservePct: 0.15,
			Env: map[string]string{"HSA_OVERRIDE_GFX_VERSION": "11.0.0"},
		},
		{
			ID: "generic_48gb", Name: "Generic 48GB GPU",
			GPUMemGB: 48, PeakParallel: 8, MaxParallel: 12, ReservePct: 0.20,
		},
		{
			ID: "generic_24gb", Name: "Generic 24GB GPU",
			GPUMemGB: 24, PeakParallel: 4, MaxParallel: 8, ReservePct: 0.20,
		},
		{
			ID: "generic_16gb", Name: "Generic 16GB GPU",
			GPUMemGB: 16, PeakParallel: 4, MaxParallel: 6, ReservePct: 0.20,
		},
	}
}
