// Package workflow runs the branch, commit and push sequence against git.
package workflow

// GitClient abstracts git operations for testability.
type GitClient interface {
	IsGitRepository() bool
	CurrentBranch() (string, error)
	CreateBranch(name string) error
	SwitchBranch(name string) error
	StageFiles(files []string) error
	Commit(message string, args ...string) error
	CommitTracked(message string, args ...string) error
	Push(remote, branch string, force bool) error
	Diff() (string, error)
	HasSubmodules() bool
}
