package workflow

import "errors"

// Failures of the push workflow. Each one ends the run; callers match them
// with errors.Is.
var (
	ErrNotGitRepository     = errors.New("not a git repository")
	ErrInvalidBranchName    = errors.New("invalid branch name")
	ErrStageFailed          = errors.New("one or more files could not be added")
	ErrCommitFailed         = errors.New("could not commit files")
	ErrMissingCommitMessage = errors.New("could not commit files, commit message expected")
	ErrPushFailed           = errors.New("push failed")
)
