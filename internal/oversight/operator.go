package oversight

import (
	"context"
	"sync"

	"harmonicd/pkg/types"
)

// Generator issues one request to a text-generation service. A generator must
// apply its own hard timeout; errors are treated as "no briefing".
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Operator coordinates context sharing across workers. One instance is scoped
// to a session; counters are monotonic over its lifetime.
type Operator struct {
	mu sync.RWMutex

	activity  []ActivityEvent
	successes []Approach
	failures  []Approach
	profiles  map[string]string

	groupsProcessed uint64
	suggestions     uint64

	gen Generator
}

// New constructs an Operator. gen may be nil, in which case tier-2 briefings
// are disabled and only mechanical context is served.
func New(gen Generator) *Operator {
	return &Operator{
		profiles: make(map[string]string),
		gen:      gen,
	}
}

// Summary reports session statistics for logging and /status.
func (o *Operator) Summary() types.StatusResponse {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return types.StatusResponse{
		GroupsProcessed: o.groupsProcessed,
		Successes:       len(o.successes),
		Failures:        len(o.failures),
		Suggestions:     o.suggestions,
		ProfilesCached:  len(o.profiles),
		Observations:    len(o.activity),
	}
}
