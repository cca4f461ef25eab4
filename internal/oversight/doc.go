// Package oversight implements the Operator: a coordination layer that lets
// concurrently running model workers share what worked and what failed, and
// that injects short advisory text into worker prompts. It is structured into
// small files by concern:
//
//   - operator.go: core Operator type, constructor, counters, Summary.
//   - ledger.go: append-only activity/outcome records and truncation caps.
//   - context.go: GetContext entry point and the tier-1 mechanical lookup.
//   - briefing.go: tier-2 generative briefing (activity summary + prompt).
//
// Mutators (Observe, RecordSuccess, RecordFailure, RecordProfile) are safe
// under concurrent invocation; GetContext takes a point-in-time snapshot
// under brief exclusive access and performs its single bounded network call
// with no lock held. GetContext never returns an error: every briefing
// failure degrades to an empty tier-2 contribution.
package oversight
