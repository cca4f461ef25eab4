package registry

import (
	"sort"

	"harmonicd/pkg/types"
)

// Documented fallbacks used when a caller names an unknown model or profile.
const (
	DefaultModelName = "qwen3:4b"
	DefaultProfileID = "generic_24gb"
)

// Registry holds the immutable model catalog and hardware profile table for
// one run. Lookups return (value, ok); the caller decides the default policy.
type Registry struct {
	models   map[string]types.ModelSpec
	profiles map[string]types.HardwareProfile
}

// New builds a Registry from explicit tables. Later entries win on duplicate
// names, which lets an overlay file extend or replace the built-ins.
func New(models []types.ModelSpec, profiles []types.HardwareProfile) *Registry {
	r := &Registry{
		models:   make(map[string]types.ModelSpec, len(models)),
		profiles: make(map[string]types.HardwareProfile, len(profiles)),
	}
	for _, m := range models {
		r.models[m.Name] = m
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

// Default returns a Registry seeded with the built-in tables.
func Default() *Registry {
	return New(DefaultModels(), DefaultProfiles())
}

// Model looks up a model spec by name.
func (r *Registry) Model(name string) (types.ModelSpec, bool) {
	m, ok := r.models[name]
	return m, ok
}

// ModelOrDefault resolves name to its spec, substituting the default spec for
// unknown names. The returned spec keeps the requested name so allocation
// entries stay keyed by what the caller asked for.
func (r *Registry) ModelOrDefault(name string) types.ModelSpec {
	if m, ok := r.models[name]; ok {
		return m
	}
	m := r.models[DefaultModelName]
	m.Name = name
	return m
}

// Profile looks up a hardware profile by id.
func (r *Registry) Profile(id string) (types.HardwareProfile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// ProfileOrDefault resolves id to its profile, substituting the default
// profile for unknown ids.
func (r *Registry) ProfileOrDefault(id string) types.HardwareProfile {
	if p, ok := r.profiles[id]; ok {
		return p
	}
	return r.profiles[DefaultProfileID]
}

// Models returns the catalog sorted by (tier, name).
func (r *Registry) Models() []types.ModelSpec {
	out := make([]types.ModelSpec, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Profiles returns the hardware table sorted by descending memory.
func (r *Registry) Profiles() []types.HardwareProfile {
	out := make([]types.HardwareProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GPUMemGB != out[j].GPUMemGB {
			return out[i].GPUMemGB > out[j].GPUMemGB
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Resolve maps requested model names to specs, substituting the default spec
// for unknown names. Order follows the request.
func (r *Registry) Resolve(names []string) []types.ModelSpec {
	out := make([]types.ModelSpec, 0, len(names))
	for _, n := range names {
		out = append(out, r.ModelOrDefault(n))
	}
	return out
}

// DefaultStack is the standard set of roles allocated when a request names no
// models.
func DefaultStack() []string {
	return []string{
		"executive", "operator",
		"technical_director", "research_director", "creative_director",
		"coder", "analyst",
	}
}
