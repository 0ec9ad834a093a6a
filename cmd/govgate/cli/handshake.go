package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Heban-7/governed-ai-native-ide/internal/handshake"
)

func newHandshakeCmd(workdir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handshake <intent-id>",
		Short: "Render the XML handshake payload for an active intent",
		Long: `Loads .orchestration/active_intents.yaml, locates the given intent
id, and prints the <intent_context> payload an agent host would inject
into the model's context at session start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rendered, err := handshake.Select(*workdir, args[0])
			if err != nil {
				return fmt.Errorf("handshake: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	return cmd
}
