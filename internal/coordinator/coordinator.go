// Package coordinator wires the registry, allocation engine, and Operator
// into the single service the HTTP layer talks to. External packages should
// use public methods only.
package coordinator

import (
	"context"
	"time"

	"harmonicd/internal/alloc"
	"harmonicd/internal/oversight"
	"harmonicd/internal/registry"
	"harmonicd/pkg/types"
)

// Config encapsulates tunables for Coordinator construction.
type Config struct {
	Registry *registry.Registry
	// DefaultProfile is the hardware profile used when a request names none.
	DefaultProfile string
	// GPUMemGB overrides the profile's memory when nonzero.
	GPUMemGB float64
	// MinParallel is the floor degree for allocations (default 1).
	MinParallel int
	// Generator backs tier-2 briefings; nil disables them.
	Generator oversight.Generator
}

type Coordinator struct {
	reg            *registry.Registry
	defaultProfile string
	gpuMemGB       float64
	minParallel    int
	operator       *oversight.Operator
	startTime      time.Time
}

// New constructs a Coordinator, applying defaults for unset fields.
func New(cfg Config) *Coordinator {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.Default()
	}
	prof := cfg.DefaultProfile
	if prof == "" {
		prof = registry.DefaultProfileID
	}
	minP := cfg.MinParallel
	if minP <= 0 {
		minP = 1
	}
	return &Coordinator{
		reg:            reg,
		defaultProfile: prof,
		gpuMemGB:       cfg.GPUMemGB,
		minParallel:    minP,
		operator:       oversight.New(cfg.Generator),
		startTime:      time.Now(),
	}
}

// Models returns the model catalog.
func (c *Coordinator) Models() []types.ModelSpec { return c.reg.Models() }

// Profiles returns the hardware profile table.
func (c *Coordinator) Profiles() []types.HardwareProfile { return c.reg.Profiles() }

// Allocate computes a plan for the request. Unknown model names and profile
// ids resolve to documented defaults; the run always completes and reports
// every model's outcome including skips.
func (c *Coordinator) Allocate(req types.AllocateRequest) types.AllocationPlan {
	profileID := req.Profile
	if profileID == "" {
		profileID = c.defaultProfile
	}
	hw := c.reg.ProfileOrDefault(profileID)
	if req.GPUMemGB > 0 {
		hw.GPUMemGB = req.GPUMemGB
	} else if req.Profile == "" && c.gpuMemGB > 0 {
		hw.GPUMemGB = c.gpuMemGB
	}
	names := req.Models
	if len(names) == 0 {
		names = registry.DefaultStack()
	}
	minP := req.MinParallel
	if minP <= 0 {
		minP = c.minParallel
	}
	return alloc.Allocate(c.reg.Resolve(names), hw, minP)
}

// Observe records one task lifecycle event.
func (c *Coordinator) Observe(req types.ObserveRequest) {
	c.operator.Observe(req.TaskID, req.Stage, req.Model, req.Category, req.Detail)
}

// RecordSuccess records a successful approach.
func (c *Coordinator) RecordSuccess(req types.SuccessRequest) {
	c.operator.RecordSuccess(req.Category, req.Approach, req.Count, req.Profile)
}

// RecordFailure records a failed approach.
func (c *Coordinator) RecordFailure(req types.FailureRequest) {
	c.operator.RecordFailure(req.Category, req.Approach)
}

// RecordProfile stores a completed task profile.
func (c *Coordinator) RecordProfile(req types.ProfileRequest) {
	c.operator.RecordProfile(req.TaskID, req.Profile)
}

// GetContext returns advisory text for the next worker prompt; possibly "".
func (c *Coordinator) GetContext(ctx context.Context, req types.ContextRequest) string {
	return c.operator.GetContext(ctx, req.TaskID, req.Category, req.Profile, req.GroupSize)
}

// Status reports Operator session statistics plus server timing.
func (c *Coordinator) Status() types.StatusResponse {
	st := c.operator.Summary()
	now := time.Now()
	st.UptimeSeconds = int64(now.Sub(c.startTime).Seconds())
	st.ServerTimeUnix = now.Unix()
	return st
}

// Ready reports whether the service can serve requests. Allocation and
// mechanical context need no external dependency, so the coordinator is
// ready as soon as it is constructed.
func (c *Coordinator) Ready() bool { return true }
