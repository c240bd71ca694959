package gitcmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Dir    string
	Env    []string
	Logger *slog.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) withDefaults() Runner {
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

func (r Runner) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

// Describe renders args the way they are logged.
func Describe(args []string) string {
	return "git " + strings.Join(args, " ")
}

func (r Runner) prepare(args []string) *exec.Cmd {
	r = r.withDefaults()
	r.Logger.Debug("Running: "+Describe(args), "dir", r.Dir)
	return r.command(args...)
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(args ...string) (Result, error) {
	r = r.withDefaults()
	cmd := r.prepare(args)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	result := Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}
	if err != nil {
		r.Logger.Debug("git command failed",
			"command", Describe(args), "stderr", result.StderrString(true), "error", err)
	}
	return result, err
}
