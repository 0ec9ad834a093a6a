// Package approval abstracts the human-in-the-loop capability the Hook
// Engine consumes (spec §9 design note): a single async request/response,
// with timeout treated as reject.
package approval

import "context"

// Decision is the outcome of an approval request.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
	Timeout Decision = "timeout"
)

// Request describes what is being asked of the human.
type Request struct {
	Summary string
	Meta    map[string]any
}

// Capability is the abstract ask-approval dependency injected into the
// Hook Engine's ExecuteOptions (spec §2, §4.3).
type Capability interface {
	Ask(ctx context.Context, req Request) (Decision, error)
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(ctx context.Context, req Request) (Decision, error)

// Ask calls f.
func (f CapabilityFunc) Ask(ctx context.Context, req Request) (Decision, error) {
	return f(ctx, req)
}

// AutoReject always rejects; useful as a safe default when no human
// approval channel is wired up (e.g. headless CI runs).
var AutoReject Capability = CapabilityFunc(func(_ context.Context, _ Request) (Decision, error) {
	return Reject, nil
})

// AutoApprove always approves; useful for tests exercising the "approved"
// path without a real human.
var AutoApprove Capability = CapabilityFunc(func(_ context.Context, _ Request) (Decision, error) {
	return Approve, nil
})
