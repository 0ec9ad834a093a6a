// Package postprocess implements the Post-process Orchestrator: an
// ordered set of external-command checks (format, typecheck, test) run
// after a mutating tool succeeds. Checks never vote — a failing check is
// surfaced as a warning to the agent, it cannot undo or retry the
// invocation (spec §2's "components leaves first" table, 5% share).
//
// Each check shells out under its own timeout the same way the teacher's
// output filter pipes content through an external command.
package postprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Heban-7/governed-ai-native-ide/internal/classifier"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
)

// DefaultTimeout bounds a single check's external command.
const DefaultTimeout = 30 * time.Second

// Check is one named external-command post-process step (e.g. "format",
// "typecheck", "test").
type Check struct {
	Name    string
	Command []string
	Timeout time.Duration
}

// Result is the outcome of running one Check.
type Result struct {
	Name   string
	Passed bool
	Output string
	Err    error
}

// Orchestrator runs its Checks, in order, after a mutating invocation
// succeeds.
type Orchestrator struct {
	Checks []Check
}

// New builds an Orchestrator over checks, run in the given order.
func New(checks ...Check) *Orchestrator {
	return &Orchestrator{Checks: checks}
}

// PostHook adapts Run to the hooks.PostHookFunc signature.
func (o *Orchestrator) PostHook() hooks.PostHookFunc {
	return func(ctx context.Context, hc *hooks.Context, outcome hooks.Outcome) error {
		return o.Run(ctx, hc, outcome)
	}
}

// Run executes every configured check when outcome reflects a successful
// destructive invocation, pushing a warning for any check that fails
// rather than revising the (already-committed) outcome.
func (o *Orchestrator) Run(ctx context.Context, hc *hooks.Context, outcome hooks.Outcome) error {
	if !outcome.Allowed || outcome.Err != nil {
		return nil
	}
	if len(o.Checks) == 0 {
		return nil
	}

	class := classifier.Classify(hc.ToolName, hc.Payload)
	if !class.IsDestructive() {
		return nil
	}

	dir := ""
	if hc.Session != nil {
		dir = hc.Session.WorkingDirectory
	}

	var firstErr error
	for _, c := range o.Checks {
		result := c.run(ctx, dir)
		if result.Passed {
			continue
		}
		if firstErr == nil {
			firstErr = result.Err
		}
		warn := govtypes.NewHookWarning(fmt.Sprintf("post-process check %q failed: %s", result.Name, summarize(result)))
		hc.PushResult(warn.JSON())
		if hc.Session != nil {
			hc.Session.PushMessage(warn.JSON())
		}
	}

	return firstErr
}

func summarize(r Result) string {
	if r.Err != nil {
		return r.Err.Error()
	}
	out := r.Output
	const maxLen = 400
	if len(out) > maxLen {
		out = out[:maxLen] + "..."
	}
	return out
}

// run executes one check's command with stdin closed and its own
// deadline, rooted at dir.
func (c Check) run(ctx context.Context, dir string) Result {
	if len(c.Command) == 0 {
		return Result{Name: c.Name, Passed: true}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.Command[0], c.Command[1:]...) //nolint:gosec // check command is operator-configured
	cmd.Dir = dir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if err == nil {
		return Result{Name: c.Name, Passed: true, Output: combined.String()}
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{Name: c.Name, Passed: false, Err: fmt.Errorf("check %q timed out after %s", c.Name, timeout)}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return Result{Name: c.Name, Passed: false, Err: fmt.Errorf("check %q command not found: %w", c.Name, err)}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			Name:   c.Name,
			Passed: false,
			Output: combined.String(),
			Err:    fmt.Errorf("check %q exited %d", c.Name, exitErr.ExitCode()),
		}
	}

	return Result{Name: c.Name, Passed: false, Err: fmt.Errorf("check %q failed: %w", c.Name, err)}
}
