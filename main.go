package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MatrixWeber/git-scripts/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd.SetContext(ctx)

	if err := cmd.Execute(); err != nil {
		// git received the same signal; the repository is left as its last command made it
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			cancel()
			os.Exit(cmd.ExitInterrupt)
		}
		cmd.ReportError(err)
		cancel()
		os.Exit(cmd.ExitCode(err))
	}
}
