package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/formatter"
	"github.com/MatrixWeber/git-scripts/internal/gitutil"
	"github.com/MatrixWeber/git-scripts/internal/ui"
)

// DefaultRemote is used when Options.Remote is empty.
const DefaultRemote = "origin"

// Request is one invocation of the workflow. It is built once from the
// command line and never modified.
type Request struct {
	BranchName    string
	CommitMessage string
	Files         []string
	Force         bool
}

type Options struct {
	Remote    string
	NoVerify  bool
	ErrWriter io.Writer
	Logger    *slog.Logger
}

// Result describes a completed run.
type Result struct {
	Branch  string
	Message string
	// FromSubmoduleDiff is set when Message was built from git diff.
	FromSubmoduleDiff bool
}

type PushFlow struct {
	git  GitClient
	opts Options
}

func NewPushFlow(git GitClient, opts Options) *PushFlow {
	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PushFlow{git: git, opts: opts}
}

// Run resolves the branch, commits and pushes, stopping at the first
// failure. Nothing is retried or rolled back. Once ctx is cancelled no
// further git command is started.
func (f *PushFlow) Run(ctx context.Context, req Request) (Result, error) {
	if err := interrupted(ctx, "branch"); err != nil {
		return Result{}, err
	}
	branch, err := f.EnsureBranch(req)
	if err != nil {
		return Result{}, err
	}
	result := Result{Branch: branch, Message: req.CommitMessage}

	if err := interrupted(ctx, "commit"); err != nil {
		return result, err
	}
	if req.CommitMessage == "" && f.git.HasSubmodules() {
		message, err := f.CommitSubmoduleSummary()
		if err != nil {
			return result, err
		}
		result.Message = message
		result.FromSubmoduleDiff = true
	} else if err := f.StageAndCommit(req.Files, req.CommitMessage); err != nil {
		return result, err
	}

	if err := interrupted(ctx, "push"); err != nil {
		return result, err
	}
	if err := f.Push(branch, req.Force); err != nil {
		return result, err
	}
	return result, nil
}

func interrupted(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted before %s: %w", step, err)
	}
	return nil
}

// EnsureBranch creates the requested branch or switches to it when it
// already exists. Without a requested name the current branch is used.
func (f *PushFlow) EnsureBranch(req Request) (string, error) {
	if req.BranchName == "" {
		name, err := f.git.CurrentBranch()
		if err != nil {
			if !f.git.IsGitRepository() {
				return "", fmt.Errorf("%w: %w", ErrNotGitRepository, err)
			}
			return "", fmt.Errorf("%w: cannot resolve current branch: %w", ErrInvalidBranchName, err)
		}
		f.opts.Logger.Debug("using current branch", "branch", name)
		return name, nil
	}

	name := req.BranchName
	createErr := f.git.CreateBranch(name)
	if createErr == nil {
		f.opts.Logger.Info("created branch", "branch", name)
		fmt.Fprintf(f.opts.ErrWriter, "Created and switched to branch: %s\n", name)
		return name, nil
	}
	f.opts.Logger.Debug("branch creation failed, switching instead", "branch", name, "error", createErr)

	if err := f.git.SwitchBranch(name); err != nil {
		wrapped := fmt.Errorf("%w '%s': %w", ErrInvalidBranchName, name, err)
		if lintErr := gitutil.ValidateBranchName(name); lintErr != nil {
			return "", fmt.Errorf("%w (hint: %v)", wrapped, lintErr)
		}
		return "", wrapped
	}
	f.opts.Logger.Info("switched to existing branch", "branch", name)
	fmt.Fprintf(f.opts.ErrWriter, "Switched to existing branch: %s\n", name)
	return name, nil
}

// StageAndCommit stages exactly files and commits them. With no files every
// modified tracked file is committed; untracked files never are.
func (f *PushFlow) StageAndCommit(files []string, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMissingCommitMessage
	}

	if len(files) == 0 {
		if err := f.git.CommitTracked(message, f.commitArgs()...); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitFailed, err)
		}
		f.opts.Logger.Info("committed tracked changes", "message", message)
		fmt.Fprintln(f.opts.ErrWriter, "Committed all modified tracked files.")
		return nil
	}

	if err := f.git.StageFiles(files); err != nil {
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}
	if err := f.git.Commit(message, f.commitArgs()...); err != nil {
		return fmt.Errorf("%w %v: %w", ErrCommitFailed, files, err)
	}
	f.opts.Logger.Info("committed files", "files", files, "message", message)
	fmt.Fprintf(f.opts.ErrWriter, "Committed files: %v\n", files)
	return nil
}

// CommitSubmoduleSummary commits every modified tracked file with a message
// built from the submodule lines of git diff.
func (f *PushFlow) CommitSubmoduleSummary() (string, error) {
	diff, err := f.git.Diff()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	message := formatter.SummarizeSubmoduleDiff(diff)
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: no submodule changes found in git diff", ErrMissingCommitMessage)
	}
	f.opts.Logger.Debug("built commit message from submodule diff", "message", message)

	if err := f.git.CommitTracked(message, f.commitArgs()...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	fmt.Fprintln(f.opts.ErrWriter, "Committed submodule changes:")
	fmt.Fprint(f.opts.ErrWriter, message)
	return message, nil
}

// Push sends branch to the configured remote. A rejected normal push is
// reported as is and never retried with force.
func (f *PushFlow) Push(branch string, force bool) error {
	verb := "Pushing"
	if force {
		verb = "Force pushing"
	}
	sp := ui.NewSpinner(fmt.Sprintf("%s %s to %s...", verb, branch, f.opts.Remote))
	sp.Start()
	err := f.git.Push(f.opts.Remote, branch, force)
	sp.Stop()

	if err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	f.opts.Logger.Info("pushed branch", "remote", f.opts.Remote, "branch", branch, "force", force)
	fmt.Fprintln(f.opts.ErrWriter, ui.Success(fmt.Sprintf("Pushed %s to %s", branch, f.opts.Remote)))
	return nil
}

func (f *PushFlow) commitArgs() []string {
	if f.opts.NoVerify {
		return []string{"--no-verify"}
	}
	return nil
}
