package gitutil

import (
	"errors"
	"fmt"
	"strings"
)

var invalidRefChars = []string{" ", "~", "^", ":", "?", "*", "[", "\\", "@{"}

// ValidateBranchName reports the first rule of git check-ref-format that
// name breaks. It is used to explain why git refused a branch, not to
// replace git's own check.
func ValidateBranchName(name string) error {
	switch {
	case name == "":
		return errors.New("branch name cannot be empty")
	case name == "@":
		return errors.New("branch name cannot be '@'")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("branch name cannot start with '-': %s", name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("branch name cannot contain '..': %s", name)
	case strings.HasSuffix(name, "/") || strings.Contains(name, "//"):
		return fmt.Errorf("branch name has an empty path component: %s", name)
	case strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("branch name cannot end with '.' or '.lock': %s", name)
	}
	for _, ch := range invalidRefChars {
		if strings.Contains(name, ch) {
			return fmt.Errorf("branch name contains invalid character %q: %s", ch, name)
		}
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("branch name contains a control character: %q", name)
		}
	}
	return nil
}
