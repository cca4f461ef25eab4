package oversight

import "time"

// Truncation caps applied exactly once, at write time. Stored text never
// exceeds its cap.
const (
	detailCap         = 300
	successCap        = 400
	failureCap        = 300
	approachProfileCap = 400
	taskProfileCap    = 500
)

// ActivityEvent is one task lifecycle observation. Order is insertion order;
// Time is the authoritative causal marker.
type ActivityEvent struct {
	TaskID   string
	Stage    string
	Model    string
	Category string
	Detail   string
	Time     time.Time
}

// Approach is one recorded approach for a category. Successes and failures
// live in separate append-only partitions.
type Approach struct {
	Category string
	Approach string
	Profile  string
	Count    int
}

// Observe appends an activity event. Stage and category are caller-defined
// free-form tags and are matched literally elsewhere.
func (o *Operator) Observe(taskID, stage, model, category, detail string) {
	ev := ActivityEvent{
		TaskID:   taskID,
		Stage:    stage,
		Model:    model,
		Category: category,
		Detail:   truncate(detail, detailCap),
		Time:     time.Now(),
	}
	o.mu.Lock()
	o.activity = append(o.activity, ev)
	o.mu.Unlock()
}

// RecordProfile upserts the profile text for a task. Last write wins.
func (o *Operator) RecordProfile(taskID, profile string) {
	o.mu.Lock()
	o.profiles[taskID] = truncate(profile, taskProfileCap)
	o.mu.Unlock()
}

// RecordSuccess appends a successful approach for a category. count defaults
// to 1 when nonpositive.
func (o *Operator) RecordSuccess(category, approach string, count int, profile string) {
	if count <= 0 {
		count = 1
	}
	rec := Approach{
		Category: category,
		Approach: truncate(approach, successCap),
		Profile:  truncate(profile, approachProfileCap),
		Count:    count,
	}
	o.mu.Lock()
	o.successes = append(o.successes, rec)
	o.mu.Unlock()
}

// RecordFailure appends a failed approach for a category.
func (o *Operator) RecordFailure(category, approach string) {
	rec := Approach{
		Category: category,
		Approach: truncate(approach, failureCap),
	}
	o.mu.Lock()
	o.failures = append(o.failures, rec)
	o.mu.Unlock()
}

// Profile returns the cached profile for a task, if any.
func (o *Operator) Profile(taskID string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.profiles[taskID]
	return p, ok
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
