package alloc

import (
	"math"
	"sort"

	"harmonicd/pkg/types"
)

// CandidateDegrees is the fixed descending list of parallel degrees to try
// when placing a model.
var CandidateDegrees = []int{24, 20, 16, 12, 8, 6, 4, 2, 1}

// AllocationEntry status values.
const (
	StatusAllocated = "allocated"
	StatusSkipped   = "skipped"
)

// ModelMemoryGB returns the memory needed to serve spec at the given degree.
func ModelMemoryGB(spec types.ModelSpec, parallel int) float64 {
	return spec.BaseGB + float64(parallel)*spec.KVGB
}

// targetParallel derives the tier-based degree target, clamped to
// [minParallel, maxParallel]. Fractional targets truncate toward zero before
// clamping, matching the descending candidate scan they feed.
func targetParallel(tier, peak, minParallel, maxParallel int) int {
	var target int
	switch {
	case tier <= 1:
		target = peak
	case tier == 2:
		target = int(float64(peak) * 0.75)
	case tier == 3:
		target = int(float64(peak) * 0.5)
	default:
		target = int(float64(peak) * 0.33)
	}
	if target > maxParallel {
		target = maxParallel
	}
	if target < minParallel {
		target = minParallel
	}
	return target
}

// Allocate assigns parallel degrees to models against a shared memory budget.
//
// Models are processed in ascending tier order (stable for equal tiers). For
// each model the highest candidate degree not exceeding its tier target that
// still fits the remaining budget is committed; a model that fits at no
// candidate is recorded as skipped with degree 0. The scan is greedy and
// never backtracks: a committed higher-tier claim is never reduced to make a
// lower-tier model fit, and starving low-tier models is an accepted outcome,
// not an error. Identical inputs always yield identical plans.
func Allocate(specs []types.ModelSpec, hw types.HardwareProfile, minParallel int) types.AllocationPlan {
	if minParallel <= 0 {
		minParallel = 1
	}
	ordered := make([]types.ModelSpec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Tier < ordered[j].Tier })

	available := hw.AvailableGB()
	plan := types.AllocationPlan{
		Hardware: hw,
		Entries:  make([]types.AllocationEntry, 0, len(ordered)),
		BudgetGB: round1(available),
		Env:      copyEnv(hw.Env),
	}

	maxAssigned := 0
	for _, spec := range ordered {
		target := targetParallel(spec.Tier, hw.PeakParallel, minParallel, hw.MaxParallel)
		entry := types.AllocationEntry{
			Model:  spec.Name,
			Tier:   spec.Tier,
			Source: spec.Source,
			Status: StatusSkipped,
		}
		for _, p := range CandidateDegrees {
			if p > target {
				continue
			}
			if p < minParallel {
				break
			}
			need := ModelMemoryGB(spec, p)
			if need <= available {
				entry.Parallel = p
				entry.MemoryGB = round1(need)
				entry.Status = StatusAllocated
				available -= need
				break
			}
		}
		if entry.Parallel > maxAssigned {
			maxAssigned = entry.Parallel
		}
		plan.TotalGB = round1(plan.TotalGB + entry.MemoryGB)
		plan.Entries = append(plan.Entries, entry)
	}
	// The server's global parallelism setting must be at least 1 even when
	// every model was skipped.
	if maxAssigned < 1 {
		maxAssigned = 1
	}
	plan.MaxParallel = maxAssigned
	return plan
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func copyEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
