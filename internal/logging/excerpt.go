package logging

import (
	"fmt"
	"strings"
)

// DefaultExcerptLines is the number of trailing lines kept by Excerpt.
const DefaultExcerptLines = 20

// Excerpt returns the last maxLines lines of captured output, filtered for secrets,
// for use as a log field. The full output is kept in the pipeline result;
// only the log entry is shortened.
func Excerpt(output string, maxLines int) string {
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return ""
	}
	if maxLines <= 0 {
		maxLines = DefaultExcerptLines
	}

	lines := strings.Split(output, "\n")
	if len(lines) > maxLines {
		dropped := len(lines) - maxLines
		lines = append([]string{fmt.Sprintf("... (%d lines omitted)", dropped)}, lines[dropped:]...)
	}
	return FilterSensitiveValue(strings.Join(lines, "\n"))
}
