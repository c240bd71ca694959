package git

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/gitcmd"
	"github.com/MatrixWeber/git-scripts/internal/gitutil"
)

// DefaultSubmoduleMarker is the administrative path git creates once a
// repository has at least one registered submodule.
const DefaultSubmoduleMarker = ".git/modules"

type Options struct {
	Dir    string
	Env    []string
	Logger *slog.Logger
	// DryRun reports mutating commands on Out instead of running them.
	DryRun          bool
	Out             io.Writer
	SubmoduleMarker string
}

// Client runs the git subcommands the push workflow needs.
type Client struct {
	runner gitcmd.Runner
	dryRun bool
	out    io.Writer
	marker string
}

func NewClient(opts Options) *Client {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	marker := opts.SubmoduleMarker
	if marker == "" {
		marker = DefaultSubmoduleMarker
	}
	return &Client{
		runner: gitcmd.Runner{Dir: opts.Dir, Env: opts.Env, Logger: opts.Logger},
		dryRun: opts.DryRun,
		out:    out,
		marker: marker,
	}
}

func (c *Client) query(action string, args ...string) (string, error) {
	result, err := c.runner.Run(args...)
	if err != nil {
		return "", gitutil.WrapGitError(action, result, err)
	}
	return result.StdoutString(false), nil
}

func (c *Client) mutate(action string, args ...string) error {
	if c.dryRun {
		fmt.Fprintf(c.out, "[dry-run] %s\n", gitcmd.Describe(args))
		return nil
	}
	result, err := c.runner.Run(args...)
	if err != nil {
		return gitutil.WrapGitError(action, result, err)
	}
	return nil
}

// IsGitRepository reports whether the working directory is inside a work tree.
func (c *Client) IsGitRepository() bool {
	out, err := c.query("git rev-parse --is-inside-work-tree", "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the abbreviated name of the checked-out branch.
func (c *Client) CurrentBranch() (string, error) {
	out, err := c.query("git rev-parse failed", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "" {
		return "", errors.New("git rev-parse returned an empty branch name")
	}
	return name, nil
}

// CreateBranch runs git checkout -b. In dry-run mode it fails the way the
// real command would for an existing or malformed name.
func (c *Client) CreateBranch(name string) error {
	if c.dryRun {
		if err := c.checkBranchName(name); err != nil {
			return err
		}
		if c.branchExists(name) {
			return fmt.Errorf("git checkout -b failed: a branch named '%s' already exists", name)
		}
	}
	return c.mutate("git checkout -b failed", "checkout", "-b", name)
}

// SwitchBranch runs git checkout on an existing branch.
func (c *Client) SwitchBranch(name string) error {
	if c.dryRun {
		if err := c.checkBranchName(name); err != nil {
			return err
		}
	}
	return c.mutate("git checkout failed", "checkout", name)
}

func (c *Client) checkBranchName(name string) error {
	_, err := c.query("git check-ref-format failed", "check-ref-format", "--branch", name)
	return err
}

func (c *Client) branchExists(name string) bool {
	_, err := c.query("git rev-parse failed", "rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// StageFiles adds exactly the given paths in a single git add.
func (c *Client) StageFiles(files []string) error {
	if len(files) == 0 {
		return errors.New("no files to stage")
	}
	args := append([]string{"add", "--"}, files...)
	return c.mutate("git add failed", args...)
}

// Commit commits what is already staged.
func (c *Client) Commit(message string, args ...string) error {
	commitArgs := append([]string{"commit", "-m", message}, args...)
	return c.mutate("git commit failed", commitArgs...)
}

// CommitTracked stages every modified tracked file and commits. Untracked
// files are left alone.
func (c *Client) CommitTracked(message string, args ...string) error {
	commitArgs := append([]string{"commit", "-a", "-m", message}, args...)
	return c.mutate("git commit -a failed", commitArgs...)
}

// Push pushes branch to remote, with --force when requested.
func (c *Client) Push(remote, branch string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, branch)
	return c.mutate("git push failed", args...)
}

// Diff returns the working tree diff against the index.
func (c *Client) Diff() (string, error) {
	return c.query("git diff failed", "diff")
}

// HasSubmodules reports whether the submodule marker exists, which only
// happens at the top level of a checkout with registered submodules.
func (c *Client) HasSubmodules() bool {
	path := c.marker
	if !filepath.IsAbs(path) && c.runner.Dir != "" {
		path = filepath.Join(c.runner.Dir, path)
	}
	_, err := os.Stat(path)
	return err == nil
}
