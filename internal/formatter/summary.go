package formatter

import (
	"strings"

	"github.com/MatrixWeber/git-scripts/internal/stringsutil"
)

// summaryMarkers flag the lines of a submodule diff worth keeping: ':' ends a
// "Submodule <path> <old>..<new>:" header and '>' starts a log entry.
const summaryMarkers = ":>"

// minSummaryLine is the shortest line that still has content left once the
// two leading and one trailing characters are cut.
const minSummaryLine = 3

// SummarizeSubmoduleDiff builds a commit message from git diff output of a
// superproject. Every line holding ':' or '>' contributes line[2:len-1]
// followed by a newline. The result is empty when no line qualifies.
func SummarizeSubmoduleDiff(diff string) string {
	var b strings.Builder
	for _, line := range stringsutil.Lines(diff) {
		if !isSummaryLine(line) {
			continue
		}
		b.WriteString(line[2 : len(line)-1])
		b.WriteByte('\n')
	}
	return b.String()
}

func isSummaryLine(line string) bool {
	return len(line) >= minSummaryLine && strings.ContainsAny(line, summaryMarkers)
}
