package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MatrixWeber/git-scripts/internal/ui"
	"github.com/spf13/cobra"
)

var (
	outWriterFunc = func() io.Writer { return os.Stdout }
	errWriterFunc = func() io.Writer { return os.Stderr }
)

func init() {
	outWriterFunc = func() io.Writer { return rootCmd.OutOrStdout() }
	errWriterFunc = func() io.Writer { return rootCmd.ErrOrStderr() }
}

func outWriter() io.Writer {
	return outWriterFunc()
}

func errWriter() io.Writer {
	return errWriterFunc()
}

// Exit statuses. ExitUsage matches what argument parsers conventionally use.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitInterrupt = 130
)

// UsageError marks a malformed or incomplete command line.
type UsageError struct {
	Err error
}

func newUsageError(msg string) *UsageError {
	return &UsageError{Err: errors.New(msg)}
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}
	return ExitFailure
}

// ReportError prints err the way the exit code will be interpreted: usage
// errors get the usage text, everything else a single error line.
func ReportError(err error) {
	if err == nil {
		return
	}
	w := errWriter()
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		printUsage(w)
		fmt.Fprintf(w, "%s: error: %v\n", rootCmd.Name(), usageErr)
		return
	}
	fmt.Fprintln(w, ui.Error("Error: "+err.Error()))
}

// usageArgs turns positional-argument validation failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}
