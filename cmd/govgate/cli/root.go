// Package cli builds the govgate cobra command tree: a thin CLI that
// drives the governance pipeline (internal/hooks, internal/handshake,
// internal/scope, internal/ledger, internal/postprocess) standalone, for
// demos, CI smoke tests, and manual ledger inspection — mirroring the
// teacher's split between a library-shaped cmd/entire/cli package tree
// and a cmd/entire/main.go cobra entrypoint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Heban-7/governed-ai-native-ide/internal/logging"
)

// NewRootCmd builds the govgate root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var workdir string

	root := &cobra.Command{
		Use:   "govgate",
		Short: "Tool governance pipeline for AI coding agents",
		Long: `govgate enforces intent-scoped, hash-locked, fully-audited tool
invocations for an AI-native code editor. It sits between a coding
agent's tool calls and the filesystem, denying out-of-scope or stale
writes and recording every mutation to an append-only trace ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logging.Setup()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&workdir, "workdir", ".", "repository working directory")

	root.AddCommand(newHandshakeCmd(&workdir))
	root.AddCommand(newInvokeCmd(&workdir))
	root.AddCommand(newLedgerCmd(&workdir))
	root.AddCommand(newScopeCmd(&workdir))

	return root
}
