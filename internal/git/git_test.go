package git

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentBranch(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestIsGitRepository(t *testing.T) {
	repo := CreateTestRepo(t)
	assert.True(t, repo.Client(Options{}).IsGitRepository())

	plain := t.TempDir()
	client := NewClient(Options{Dir: plain, Env: IsolatedEnv(filepath.Dir(plain))})
	assert.False(t, client.IsGitRepository())
}

func TestCreateAndSwitchBranch(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	require.NoError(t, client.CreateBranch("feature/x"))
	assert.Equal(t, "feature/x", repo.Git("rev-parse", "--abbrev-ref", "HEAD"))

	require.NoError(t, client.SwitchBranch("main"))
	err := client.CreateBranch("feature/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git checkout -b failed")
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, client.SwitchBranch("feature/x"))
	assert.Equal(t, "feature/x", repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
}

func TestStageFilesAndCommit(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	repo.WriteFile("a.txt", "a\n")
	repo.WriteFile("b.txt", "b\n")
	repo.WriteFile("README.md", "changed\n")

	require.NoError(t, client.StageFiles([]string{"a.txt"}))
	require.NoError(t, client.Commit("add a"))

	assert.Equal(t, "add a", repo.HeadMessage())
	assert.Equal(t, []string{"a.txt"}, repo.CommittedFiles())
}

func TestStageFilesMissingPath(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	err := client.StageFiles([]string{"does-not-exist.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git add failed")
	assert.Error(t, client.StageFiles(nil))
}

func TestCommitTrackedSkipsUntracked(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	repo.WriteFile("README.md", "changed\n")
	repo.WriteFile("new.txt", "untracked\n")

	require.NoError(t, client.CommitTracked("update readme"))

	assert.Equal(t, "update readme", repo.HeadMessage())
	assert.Equal(t, []string{"README.md"}, repo.CommittedFiles())
	assert.Contains(t, repo.Git("status", "--porcelain"), "?? new.txt")
}

func TestCommitNothingToCommit(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	err := client.CommitTracked("nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git commit -a failed")
}

func TestPushNormalAndForce(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	repo.WriteFile("README.md", "one\n")
	require.NoError(t, client.CommitTracked("one"))
	require.NoError(t, client.Push("origin", "main", false))
	assert.Equal(t, repo.Git("rev-parse", "HEAD"), repo.RemoteGit("rev-parse", "main"))

	// Rewrite the pushed commit so the remote diverges.
	repo.WriteFile("README.md", "two\n")
	repo.Git("commit", "-a", "--amend", "-m", "two")

	err := client.Push("origin", "main", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git push failed")
	assert.NotEqual(t, repo.Git("rev-parse", "HEAD"), repo.RemoteGit("rev-parse", "main"))

	require.NoError(t, client.Push("origin", "main", true))
	assert.Equal(t, repo.Git("rev-parse", "HEAD"), repo.RemoteGit("rev-parse", "main"))
}

func TestDiff(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})

	diff, err := client.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)

	repo.WriteFile("README.md", "key: value\n")
	diff, err = client.Diff()
	require.NoError(t, err)
	assert.Contains(t, diff, "+key: value")
}

func TestHasSubmodules(t *testing.T) {
	repo := CreateTestRepo(t)
	client := repo.Client(Options{})
	assert.False(t, client.HasSubmodules())

	require.NoError(t, os.MkdirAll(filepath.Join(repo.Dir, ".git", "modules"), 0o755))
	assert.True(t, client.HasSubmodules())

	custom := repo.Client(Options{SubmoduleMarker: "vendor/.modules"})
	assert.False(t, custom.HasSubmodules())
}

func TestDryRunSkipsMutations(t *testing.T) {
	repo := CreateTestRepo(t)
	var out bytes.Buffer
	client := repo.Client(Options{DryRun: true, Out: &out})

	require.NoError(t, client.CreateBranch("feature/dry"))
	repo.WriteFile("README.md", "dry\n")
	require.NoError(t, client.CommitTracked("dry"))
	require.NoError(t, client.Push("origin", "feature/dry", true))

	assert.Equal(t, "main", repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
	assert.Equal(t, "initial commit", repo.HeadMessage())
	assert.Contains(t, out.String(), "[dry-run] git checkout -b feature/dry")
	assert.Contains(t, out.String(), "[dry-run] git commit -a -m dry")
	assert.Contains(t, out.String(), "[dry-run] git push --force origin feature/dry")

	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestDryRunResolvesBranches(t *testing.T) {
	repo := CreateTestRepo(t)
	repo.Git("branch", "feature/old")
	var out bytes.Buffer
	client := repo.Client(Options{DryRun: true, Out: &out})

	err := client.CreateBranch("feature/old")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, client.SwitchBranch("feature/old"))

	assert.Error(t, client.CreateBranch("bad..name"))
	assert.Error(t, client.SwitchBranch("bad..name"))

	assert.Equal(t, "[dry-run] git checkout feature/old\n", out.String())
	assert.Equal(t, "main", repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
}
