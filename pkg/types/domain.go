package types

// ModelSpec describes the resource footprint and scheduling priority of one
// model role in the stack.
type ModelSpec struct {
	// Stable identifier used in allocation requests.
	// example: executive
	Name string `json:"name" yaml:"name" example:"executive"`
	// Resident memory for the model weights in GB.
	// example: 2.5
	BaseGB float64 `json:"base_gb" yaml:"base_gb" example:"2.5"`
	// Additional memory per parallel slot (KV cache) in GB.
	// example: 0.3
	KVGB float64 `json:"kv_gb" yaml:"kv_gb" example:"0.3"`
	// Priority tier; lower value is served first.
	// example: 1
	Tier int `json:"tier" yaml:"tier" example:"1"`
	// Backing model identifier passed to the inference server.
	// example: qwen3:4b
	Source string `json:"source" yaml:"source" example:"qwen3:4b"`
}

// HardwareProfile describes a device's usable memory and concurrency ceilings.
type HardwareProfile struct {
	// Profile identifier.
	// example: generic_24gb
	ID string `json:"id" yaml:"id" example:"generic_24gb"`
	// Human-friendly device name.
	// example: Generic 24GB GPU
	Name string `json:"name" yaml:"name" example:"Generic 24GB GPU"`
	// Total GPU memory in GB.
	// example: 24
	GPUMemGB float64 `json:"gpu_mem_gb" yaml:"gpu_mem_gb" example:"24"`
	// Benchmark sweet spot for concurrent generation contexts.
	// example: 4
	PeakParallel int `json:"peak_parallel" yaml:"peak_parallel" example:"4"`
	// Hard ceiling on concurrent generation contexts.
	// example: 8
	MaxParallel int `json:"max_parallel" yaml:"max_parallel" example:"8"`
	// Fraction of GPU memory withheld from allocation as headroom (0-1).
	// example: 0.2
	ReservePct float64 `json:"reserve_pct" yaml:"reserve_pct" example:"0.2"`
	// Environment overrides required by this device (e.g. HSA version pins).
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// AvailableGB returns the memory left for allocation after the reserve.
func (h HardwareProfile) AvailableGB() float64 {
	return h.GPUMemGB * (1 - h.ReservePct)
}

// AllocationEntry records the outcome for one model in an allocation run.
type AllocationEntry struct {
	// Model name as requested by the caller.
	// example: executive
	Model string `json:"model" yaml:"model" example:"executive"`
	// Assigned parallel degree; 0 when the model could not be placed.
	// example: 4
	Parallel int `json:"parallel" yaml:"parallel" example:"4"`
	// Memory consumed at the assigned degree, rounded to one decimal.
	// example: 3.7
	MemoryGB float64 `json:"memory_gb" yaml:"memory_gb" example:"3.7"`
	// Priority tier of the model.
	// example: 1
	Tier int `json:"tier" yaml:"tier" example:"1"`
	// Backing model identifier.
	// example: qwen3:4b
	Source string `json:"source" yaml:"source" example:"qwen3:4b"`
	// Either "allocated" or "skipped".
	// example: allocated
	Status string `json:"status" yaml:"status" example:"allocated"`
}

// AllocationPlan is the full result of one allocation run. Entries preserve
// the order in which models were processed (ascending tier).
type AllocationPlan struct {
	// Hardware profile the plan was computed against.
	Hardware HardwareProfile `json:"hardware" yaml:"hardware"`
	// Per-model outcomes in processing order.
	Entries []AllocationEntry `json:"entries" yaml:"entries"`
	// Sum of allocated memory across entries.
	// example: 14.2
	TotalGB float64 `json:"total_gb" yaml:"total_gb" example:"14.2"`
	// Memory budget the plan was computed against (after reserve).
	// example: 19.2
	BudgetGB float64 `json:"budget_gb" yaml:"budget_gb" example:"19.2"`
	// Highest assigned degree; configures the server's global parallelism.
	// Always at least 1.
	// example: 4
	MaxParallel int `json:"max_parallel" yaml:"max_parallel" example:"4"`
	// Environment overrides inherited from the hardware profile.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Entry returns the entry for a model name, if present.
func (p AllocationPlan) Entry(model string) (AllocationEntry, bool) {
	for _, e := range p.Entries {
		if e.Model == model {
			return e, true
		}
	}
	return AllocationEntry{}, false
}
