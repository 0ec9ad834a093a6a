package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Heban-7/governed-ai-native-ide/internal/approval"
	"github.com/Heban-7/governed-ai-native-ide/internal/intentfile"
	"github.com/Heban-7/governed-ai-native-ide/internal/pathmatch"
)

func newScopeCmd(workdir *string) *cobra.Command {
	root := &cobra.Command{
		Use:   "scope",
		Short: "Inspect and expand an intent's owned scope",
	}
	root.AddCommand(newScopeCheckCmd(workdir))
	root.AddCommand(newScopeApproveCmd(workdir))
	return root
}

func newScopeCheckCmd(workdir *string) *cobra.Command {
	var intentID, path string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether a path falls within an intent's owned scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			intents, err := intentfile.Load(*workdir)
			if err != nil {
				return fmt.Errorf("scope check: %w", err)
			}
			intent, ok := intents[intentID]
			if !ok {
				return fmt.Errorf("scope check: intent %q not found", intentID)
			}

			if pathmatch.MatchAny(intent.OwnedScope, path) {
				fmt.Fprintf(cmd.OutOrStdout(), "in scope (matched against %v)\n", intent.OwnedScope)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "out of scope (owned_scope: %v)\n", intent.OwnedScope)
			return NewExitCodeError(fmt.Errorf("scope check: %q is out of scope", path), 2)
		},
	}

	cmd.Flags().StringVar(&intentID, "intent", "", "intent id to check against")
	cmd.Flags().StringVar(&path, "path", "", "repo-relative path to check")
	return cmd
}

func newScopeApproveCmd(_ *string) *cobra.Command {
	var intentID string
	var globs []string

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Interactively approve a scope-expansion request",
		Long: `Prompts a human operator to approve expanding an intent's owned scope
with the given globs, the same approval.Capability a live scope-expansion
request drives. Since this command runs once per process, the approval
is not persisted anywhere — it demonstrates the human-in-the-loop prompt
in isolation rather than mutating a running session's expansion set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			decision, err := approval.NewConsole().Ask(cmd.Context(), approval.Request{
				Summary: fmt.Sprintf("Approve expanding intent %q's scope by: %v?", intentID, globs),
				Meta:    map[string]any{"intent_id": intentID, "additional_globs": globs},
			})
			if err != nil {
				return fmt.Errorf("scope approve: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), decision)
			return nil
		},
	}

	cmd.Flags().StringVar(&intentID, "intent", "", "intent id the expansion applies to")
	cmd.Flags().StringSliceVar(&globs, "glob", nil, "additional glob(s) to request (repeatable)")
	return cmd
}
