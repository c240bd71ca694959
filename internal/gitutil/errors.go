package gitutil

import (
	"fmt"
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/gitcmd"
)

// WrapGitError builds an error message from git's own output. Stderr wins;
// stdout is used when stderr is empty, since git commit reports "nothing to
// commit" there.
func WrapGitError(action string, result gitcmd.Result, err error) error {
	errMsg := strings.TrimSpace(string(result.Stderr))
	if errMsg == "" {
		errMsg = strings.TrimSpace(string(result.Stdout))
	}
	if errMsg != "" {
		return fmt.Errorf("%s: %s: %w", action, errMsg, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
