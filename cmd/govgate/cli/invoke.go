package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Heban-7/governed-ai-native-ide/internal/config"
	"github.com/Heban-7/governed-ai-native-ide/internal/fakes"
	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
	"github.com/Heban-7/governed-ai-native-ide/internal/logging"
)

func newInvokeCmd(workdir *string) *cobra.Command {
	var (
		toolName        string
		path            string
		content         string
		newString       string
		intentID        string
		taskID          string
		instanceID      string
		modelIdentifier string
		interactive     bool
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Drive one tool invocation through the governance pipeline",
		Long: `invoke builds a single tool call from its flags, runs it through the
Hook Engine (handshake, scope/lock, trace ledger, post-process checks),
and executes it against a fake tool runtime rooted at --workdir — useful
for demos and CI smoke tests without a live coding agent attached.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if toolName == "" {
				return fmt.Errorf("invoke: --tool is required")
			}

			settings, err := config.Load(*workdir)
			if err != nil {
				return fmt.Errorf("invoke: loading settings: %w", err)
			}
			engine := buildEngine(settings)

			payload := govtypes.Payload{}
			if path != "" {
				payload["path"] = path
			}
			if content != "" {
				payload["content"] = content
			}
			if newString != "" {
				payload["new_string"] = newString
			}

			sess := &govtypes.Session{
				WorkingDirectory: *workdir,
				TaskID:           taskID,
				InstanceID:       instanceID,
				ActiveIntentID:   intentID,
				Agent:            govtypes.AgentMetadata{ModelIdentifier: modelIdentifier},
			}

			rt := fakes.New(*workdir)
			ctx := logging.WithComponent(cmd.Context(), "cli")

			result, execErr := engine.Execute(ctx, toolName, payload, hooks.ExecuteOptions{
				Session:     sess,
				AskApproval: approvalCapability(interactive),
				PushResult: func(s string) {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				},
				HandleError: func(err error) {
					logging.Warn(ctx, "hook error", "error", err.Error())
				},
				Run: func(runCtx context.Context) (any, error) {
					return rt.Run(runCtx, toolName, payload)
				},
			})

			if !result.Allowed {
				return NewExitCodeError(fmt.Errorf("invoke: denied"), 2)
			}
			if execErr != nil {
				return fmt.Errorf("invoke: %w", execErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "allowed, invocation_id=%s result=%v\n", result.InvocationID, result.Result)
			for _, msg := range sess.UserMessages {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			if summary := worktreeSummary(*workdir); summary != "" {
				fmt.Fprintln(cmd.OutOrStdout(), summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", "", "tool name to invoke (e.g. write_to_file)")
	cmd.Flags().StringVar(&path, "path", "", "file path the tool operates on")
	cmd.Flags().StringVar(&content, "content", "", "content for write_to_file")
	cmd.Flags().StringVar(&newString, "new-string", "", "replacement content for apply_diff")
	cmd.Flags().StringVar(&intentID, "intent", "", "active intent id bound to this session")
	cmd.Flags().StringVar(&taskID, "task-id", "demo-task", "conversation task id")
	cmd.Flags().StringVar(&instanceID, "instance-id", "demo-instance", "conversation instance id")
	cmd.Flags().StringVar(&modelIdentifier, "model", "", "contributor model identifier")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "prompt for human approval on scope-expansion requests")

	return cmd
}
