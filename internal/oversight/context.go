package oversight

import (
	"context"
	"fmt"
	"strings"
)

// Tier-2 briefings are attempted only once this many approaches (successes
// plus failures) have been recorded.
const briefingThreshold = 2

// ledgerSnapshot is a point-in-time copy of the outcome partitions, taken
// under brief exclusive access so GetContext never reads shared state while
// the briefing call is outstanding.
type ledgerSnapshot struct {
	successes []Approach
	failures  []Approach
}

// GetContext returns advisory text to splice into the next worker prompt:
// the tier-1 mechanical lookup joined with the tier-2 briefing by a blank
// line, or the empty string when both are empty. It never returns an error.
func (o *Operator) GetContext(ctx context.Context, taskID, category, profile string, groupSize int) string {
	if groupSize <= 0 {
		groupSize = 1
	}

	o.mu.Lock()
	o.groupsProcessed++
	snap := ledgerSnapshot{
		successes: append([]Approach(nil), o.successes...),
		failures:  append([]Approach(nil), o.failures...),
	}
	o.mu.Unlock()

	mechanical := renderMechanical(snap, category)

	briefing := ""
	if len(snap.successes)+len(snap.failures) >= briefingThreshold {
		briefing = o.generateBriefing(ctx, snap, category, profile, groupSize)
	}

	var parts []string
	for _, p := range []string{mechanical, briefing} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// renderMechanical builds the tier-1 block: up to the first three
// same-category successes and failures, in insertion order. Category match
// is literal and case-sensitive.
func renderMechanical(snap ledgerSnapshot, category string) string {
	var lines []string

	n := 0
	for _, s := range snap.successes {
		if s.Category != category {
			continue
		}
		if n == 0 {
			lines = append(lines, "Prior successes for similar tasks:")
		}
		lines = append(lines, fmt.Sprintf("  - %s (solved %d)", truncate(s.Approach, 150), s.Count))
		n++
		if n == 3 {
			break
		}
	}

	n = 0
	for _, f := range snap.failures {
		if f.Category != category {
			continue
		}
		if n == 0 {
			lines = append(lines, "Prior failures (avoid):")
		}
		lines = append(lines, fmt.Sprintf("  - %s", truncate(f.Approach, 100)))
		n++
		if n == 3 {
			break
		}
	}

	return strings.Join(lines, "\n")
}
