package approval

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Console is an interactive human-in-the-loop capability backed by
// charmbracelet/huh — a teacher dependency with no other home in this
// spec (see SPEC_FULL.md §9.1), wired here for local/manual CLI runs of
// `govgate scope approve` and `govgate invoke`.
type Console struct{}

// NewConsole returns a Console capability.
func NewConsole() *Console {
	return &Console{}
}

// Ask renders req.Summary and a confirm prompt, returning Reject if the
// prompt itself fails (e.g. non-interactive stdin), per spec §9's
// "timeout is treated as reject".
func (Console) Ask(ctx context.Context, req Request) (Decision, error) {
	var approved bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Scope expansion requested").
				Description(req.Summary),
			huh.NewConfirm().
				Title("Approve this expansion?").
				Affirmative("Approve").
				Negative("Reject").
				Value(&approved),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return Reject, fmt.Errorf("approval prompt failed: %w", err)
	}
	if approved {
		return Approve, nil
	}
	return Reject, nil
}
