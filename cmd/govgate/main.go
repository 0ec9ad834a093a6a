package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Heban-7/governed-ai-native-ide/cmd/govgate/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	if err != nil {
		var silent *cli.SilentError
		var exitCode *cli.ExitCodeError

		switch {
		case errors.As(err, &silent):
			// Already printed.
		case errors.As(err, &exitCode):
			fmt.Fprintln(rootCmd.OutOrStderr(), exitCode.Err)
			cancel()
			os.Exit(exitCode.ExitCode)
		default:
			fmt.Fprintln(rootCmd.OutOrStderr(), err)
		}

		cancel()
		os.Exit(1)
	}
	cancel()
}
