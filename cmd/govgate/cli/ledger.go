package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
	"github.com/Heban-7/governed-ai-native-ide/internal/tui"
)

const ledgerRelPath = ".orchestration/agent_trace.jsonl"

func newLedgerCmd(workdir *string) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the append-only trace ledger",
	}
	root.AddCommand(newLedgerTailCmd(workdir))
	return root
}

func newLedgerTailCmd(workdir *string) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print (or live-watch) trace records as they are appended",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(*workdir, ledgerRelPath)

			if watch {
				model := tui.NewModel(path)
				p := tea.NewProgram(model, tea.WithAltScreen())
				if _, err := p.Run(); err != nil {
					return fmt.Errorf("ledger tail: %w", err)
				}
				return nil
			}

			return printLedger(cmd, path)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "live-watch the ledger in an interactive view")
	return cmd
}

func printLedger(cmd *cobra.Command, path string) error {
	f, err := os.Open(path) //nolint:gosec // operator-supplied ledger path
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "(no trace records yet)")
			return nil
		}
		return fmt.Errorf("ledger tail: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec govtypes.TraceRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		for _, tf := range rec.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", rec.Timestamp, rec.VCS.RevisionID, tf.RelativePath)
		}
	}
	return scanner.Err()
}
