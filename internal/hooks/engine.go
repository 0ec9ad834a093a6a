// Package hooks implements the Hook Engine (spec §4.1): the middleware
// kernel that wraps every tool invocation in an ordered pre-check /
// execute / post-process chain with uniform failure semantics.
package hooks

import (
	"context"
	"fmt"

	"github.com/Heban-7/governed-ai-native-ide/internal/approval"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// Context is the mutable value shared across one Execute call's hooks: the
// invocation id, tool name, payload, session, and capability callbacks
// (spec §4.1).
type Context struct {
	InvocationID string
	ToolName     string
	Payload      govtypes.Payload
	Session      *govtypes.Session
	AskApproval  approval.Capability
	PushResult   func(string)
	HandleError  func(error)
}

// PreDecision is a pre-hook's vote. The Engine reads the zero value
// (Allow: false) as deny, and RegisterPre stores a hook as given: a hook
// that allows without opinion returns PreDecision{Allow: true}, or is
// wrapped with the AllowHook helper below, which turns a returned
// (PreDecision{}, nil) into allow.
type PreDecision struct {
	Allow           bool
	Reason          string
	AlreadyReported bool
}

// PreHookFunc is a pre-check over a tool invocation. A true Allow lets the
// chain continue; a false Allow stops it (spec §4.1).
type PreHookFunc func(ctx context.Context, hc *Context) (PreDecision, error)

// Outcome is what a post-hook observes: whether the invocation was
// allowed, and the execute-closure's result or error.
type Outcome struct {
	Allowed bool
	Result  any
	Err     error
}

// PostHookFunc observes (never votes on) the outcome of an invocation
// (spec §4.1).
type PostHookFunc func(ctx context.Context, hc *Context, outcome Outcome) error

// ExecuteOptions bundles the per-call capabilities Execute needs (spec
// §4.1's "options bundle").
type ExecuteOptions struct {
	Session     *govtypes.Session
	AskApproval approval.Capability
	PushResult  func(string)
	HandleError func(error)
	Run         func(ctx context.Context) (any, error)
}

// Result is Execute's return value (spec §4.1).
type Result struct {
	InvocationID string
	Allowed      bool
	Result       any
	Err          error
}

// AllowHook wraps a PreHookFunc so a zero-value decision returned with a
// nil error (Go has no concept of "returned nothing" the way the source
// language's hooks can) reads as "allow, no opinion" rather than "deny".
func AllowHook(fn PreHookFunc) PreHookFunc {
	return func(ctx context.Context, hc *Context) (PreDecision, error) {
		d, err := fn(ctx, hc)
		if err != nil {
			return d, err
		}
		if d == (PreDecision{}) {
			return PreDecision{Allow: true}, nil
		}
		return d, nil
	}
}

// registry is an insertion-ordered, unique-by-name (name-list, func-map)
// pair (spec §9 design note), since Go's map does not preserve insertion
// order the way the source language's does.
type registry[F any] struct {
	names []string
	funcs map[string]F
}

func newRegistry[F any]() *registry[F] {
	return &registry[F]{funcs: map[string]F{}}
}

// register adds fn at name, replacing fn in place (keeping name's original
// position) on re-registration (spec §9: "re-registration replaces by
// name").
func (r *registry[F]) register(name string, fn F) {
	if _, exists := r.funcs[name]; !exists {
		r.names = append(r.names, name)
	}
	r.funcs[name] = fn
}

func (r *registry[F]) ordered() []string {
	return append([]string(nil), r.names...)
}

// Engine is the Hook Engine: ordered pre/post hook registries plus the
// Execute algorithm (spec §4.1).
type Engine struct {
	pre      *registry[PreHookFunc]
	post     *registry[PostHookFunc]
	critical map[string]bool
}

// NewEngine constructs an Engine. criticalNames identifies the hooks whose
// internal failure must deny the chain outright (spec §4.1: "the
// intent-requirement hook, the scope/lock hook, the human-in-the-loop
// hook"); all other pre-hook failures are non-critical.
func NewEngine(criticalNames ...string) *Engine {
	crit := make(map[string]bool, len(criticalNames))
	for _, n := range criticalNames {
		crit[n] = true
	}
	return &Engine{
		pre:      newRegistry[PreHookFunc](),
		post:     newRegistry[PostHookFunc](),
		critical: crit,
	}
}

// RegisterPre registers a pre-hook by name (spec §4.1).
func (e *Engine) RegisterPre(name string, fn PreHookFunc) {
	e.pre.register(name, fn)
}

// RegisterPost registers a post-hook by name (spec §4.1).
func (e *Engine) RegisterPost(name string, fn PostHookFunc) {
	e.post.register(name, fn)
}

// Execute runs the full pre-check / execute / post-process chain for one
// tool invocation (spec §4.1).
func (e *Engine) Execute(ctx context.Context, toolName string, payload govtypes.Payload, opts ExecuteOptions) (Result, error) {
	invocationID, err := govtypes.NewInvocationID()
	if err != nil {
		invocationID = "unknown"
	}

	push := opts.PushResult
	if push == nil {
		push = func(string) {}
	}
	handleErr := opts.HandleError
	if handleErr == nil {
		handleErr = func(error) {}
	}

	hc := &Context{
		InvocationID: invocationID,
		ToolName:     toolName,
		Payload:      payload,
		Session:      opts.Session,
		AskApproval:  opts.AskApproval,
		PushResult:   push,
		HandleError:  handleErr,
	}

	allowed, reported := e.runPreHooks(ctx, hc, push, handleErr)

	var result any
	var runErr error
	if allowed {
		if opts.Run != nil {
			result, runErr = opts.Run(ctx)
		}
	}

	outcome := Outcome{Allowed: allowed, Result: result, Err: runErr}
	e.runPostHooks(ctx, hc, outcome, push, handleErr)

	_ = reported
	if runErr != nil {
		return Result{InvocationID: invocationID, Allowed: allowed, Result: result, Err: runErr}, runErr
	}
	return Result{InvocationID: invocationID, Allowed: allowed, Result: result}, nil
}

// runPreHooks iterates pre-hooks in insertion order, honoring spec §4.1's
// CRITICAL/non-critical failure containment and deny-reason reporting.
func (e *Engine) runPreHooks(ctx context.Context, hc *Context, push func(string), handleErr func(error)) (allowed bool, reasonReported bool) {
	allowed = true

	for _, name := range e.pre.ordered() {
		fn := e.pre.funcs[name]
		decision, err := callPreHook(fn, ctx, hc)
		if err != nil {
			if e.critical[name] {
				warn := govtypes.NewToolError(govtypes.CodeHookInternalError,
					fmt.Sprintf("hook %q failed: %v", name, err), nil)
				push(warn.JSON())
				return false, true
			}
			handleErr(fmt.Errorf("pre-hook %q failed (non-critical): %w", name, err))
			continue
		}

		if !decision.Allow {
			if decision.Reason != "" && !decision.AlreadyReported {
				push(decision.Reason)
			}
			return false, decision.AlreadyReported || decision.Reason != ""
		}
	}

	return true, false
}

// callPreHook recovers a hook panic into an error so it is contained the
// same way a returned error is (spec §4.1: "under no circumstance does a
// hook exception propagate out of the engine").
func callPreHook(fn PreHookFunc, ctx context.Context, hc *Context) (decision PreDecision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, hc)
}

// runPostHooks runs every post-hook regardless of outcome, containing any
// panic/error as a hook_warning surfaced to the agent (spec §4.1).
func (e *Engine) runPostHooks(ctx context.Context, hc *Context, outcome Outcome, push func(string), handleErr func(error)) {
	for _, name := range e.post.ordered() {
		fn := e.post.funcs[name]
		if err := callPostHook(fn, ctx, hc, outcome); err != nil {
			handleErr(fmt.Errorf("post-hook %q failed: %w", name, err))
			warn := govtypes.NewHookWarning(fmt.Sprintf("post-hook %q failed: %v", name, err))
			push(warn.JSON())
		}
	}
}

func callPostHook(fn PostHookFunc, ctx context.Context, hc *Context, outcome Outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, hc, outcome)
}
