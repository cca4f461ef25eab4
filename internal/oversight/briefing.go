package oversight

import (
	"context"
	"fmt"
	"strings"
)

// Marker prefixed to every briefing so callers and humans can spot injected
// advisory text in a prompt.
const BriefingMarker = "[Operator notes]"

// Replies at or below this length (after trimming) carry no useful advice
// and are dropped.
const minBriefingLen = 20

const briefingSystem = "You are the Operator - an executive coordinator for AI research. " +
	"Generate brief, specific suggestions to help workers " +
	"avoid duplicating effort. Be direct and actionable."

// generateBriefing performs the tier-2 generative call against the snapshot.
// No lock is held while the request is outstanding. Every failure mode
// (timeout, transport error, malformed or too-short reply) yields "".
func (o *Operator) generateBriefing(ctx context.Context, snap ledgerSnapshot, category, profile string, groupSize int) string {
	if o.gen == nil {
		return ""
	}
	activity := buildActivitySummary(snap, category)
	if strings.TrimSpace(activity) == "" {
		return ""
	}

	prompt := fmt.Sprintf(`You are the Operator coordinating research across multiple task groups.

Current batch progress:
%s

A new group is about to be researched:
- Category: %s
- Group size: %d tasks
- Profile: %s

In 2-3 sentences, suggest what the worker should consider:
- What worked for similar tasks that might apply here?
- What failed that should be avoided?
- Any patterns you notice across groups?

Be specific and concise. These are suggestions, not orders.`,
		activity, category, groupSize, truncate(profile, 300))

	reply, err := o.gen.Generate(ctx, prompt, briefingSystem)
	if err != nil {
		return ""
	}
	reply = strings.TrimSpace(reply)
	if len(reply) <= minBriefingLen {
		return ""
	}

	o.mu.Lock()
	o.suggestions++
	o.mu.Unlock()
	return "\n" + BriefingMarker + " " + reply
}

// buildActivitySummary renders a bounded view of recorded outcomes for the
// briefing model: the last five successes of any category, the last three
// same-category failures, and the last two failures from other categories.
func buildActivitySummary(snap ledgerSnapshot, category string) string {
	var lines []string

	if len(snap.successes) > 0 {
		lines = append(lines, fmt.Sprintf("SOLVED (%d groups so far):", len(snap.successes)))
		for _, s := range tail(snap.successes, 5) {
			lines = append(lines, fmt.Sprintf("  [%s] %s -> solved %d", s.Category, truncate(s.Approach, 120), s.Count))
		}
	}

	var catFails, otherFails []Approach
	for _, f := range snap.failures {
		if f.Category == category {
			catFails = append(catFails, f)
		} else {
			otherFails = append(otherFails, f)
		}
	}
	if len(catFails) > 0 {
		lines = append(lines, fmt.Sprintf("FAILED for %s tasks:", category))
		for _, f := range tail(catFails, 3) {
			lines = append(lines, "  "+truncate(f.Approach, 120))
		}
	}
	if len(otherFails) > 0 {
		lines = append(lines, "Other failed approaches:")
		for _, f := range tail(otherFails, 2) {
			lines = append(lines, fmt.Sprintf("  [%s] %s", f.Category, truncate(f.Approach, 80)))
		}
	}

	return strings.Join(lines, "\n")
}

func tail(s []Approach, n int) []Approach {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
