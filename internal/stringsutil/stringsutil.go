package stringsutil

import "strings"

// Lines splits s on newlines, dropping a trailing \r from each line and the
// empty element after a final newline.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
