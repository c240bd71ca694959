//go:build !prod

package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MatrixWeber/git-scripts/internal/gitcmd"
)

// TestRepo is a throwaway work tree with a bare "origin" remote, both under
// t.TempDir(). Git config from the host is ignored.
type TestRepo struct {
	t      *testing.T
	Dir    string
	Remote string
	Env    []string
}

// RequireGit skips the test when no git executable is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// IsolatedEnv returns environment overrides that keep git away from the
// user's configuration and from any repository above root.
func IsolatedEnv(root string) []string {
	return []string{
		"GIT_CONFIG_GLOBAL=" + os.DevNull,
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CEILING_DIRECTORIES=" + root,
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_TERMINAL_PROMPT=0",
	}
}

// CreateTestRepo initializes a repository on branch main with one commit
// pushed to its bare remote.
func CreateTestRepo(t *testing.T) *TestRepo {
	t.Helper()
	RequireGit(t)

	root := t.TempDir()
	repo := &TestRepo{
		t:      t,
		Dir:    filepath.Join(root, "work"),
		Remote: filepath.Join(root, "remote.git"),
		Env:    IsolatedEnv(root),
	}

	repo.run(root, "init", "--bare", repo.Remote)
	repo.run(root, "init", repo.Dir)
	repo.Git("symbolic-ref", "HEAD", "refs/heads/main")
	repo.WriteFile("README.md", "hello\n")
	repo.Git("add", "README.md")
	repo.Git("commit", "-m", "initial commit")
	repo.Git("remote", "add", "origin", repo.Remote)
	repo.Git("push", "origin", "main")
	return repo
}

func (r *TestRepo) run(dir string, args ...string) string {
	r.t.Helper()
	runner := gitcmd.Runner{Dir: dir, Env: r.Env}
	result, err := runner.Run(args...)
	if err != nil {
		r.t.Fatalf("%s: %v\n%s", gitcmd.Describe(args), err, result.StderrString(true))
	}
	return result.StdoutString(true)
}

// Git runs a git command in the work tree and fails the test on error.
func (r *TestRepo) Git(args ...string) string {
	r.t.Helper()
	return r.run(r.Dir, args...)
}

// RemoteGit runs a git command against the bare remote.
func (r *TestRepo) RemoteGit(args ...string) string {
	r.t.Helper()
	return r.run(r.Remote, args...)
}

// WriteFile writes content to a path relative to the work tree.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

// Client returns a Client bound to the work tree with the isolated env.
func (r *TestRepo) Client(opts Options) *Client {
	opts.Dir = r.Dir
	opts.Env = append(append([]string{}, r.Env...), opts.Env...)
	return NewClient(opts)
}

// HeadMessage returns the full message of the latest commit.
func (r *TestRepo) HeadMessage() string {
	r.t.Helper()
	return r.Git("log", "-1", "--format=%B")
}

// CommittedFiles lists the paths touched by the latest commit.
func (r *TestRepo) CommittedFiles() []string {
	r.t.Helper()
	out := r.Git("show", "--name-only", "--format=", "HEAD")
	return strings.FieldsFunc(out, func(c rune) bool { return c == '\n' })
}
