package resolver

import "regexp"

// Version patterns, most specific first.
//
//nolint:gochecknoglobals // Package-level compiled regexes
var versionPatterns = []*regexp.Regexp{
	// "nanopb-0.4.8", "nanopb_generator.py version 0.4.8"
	regexp.MustCompile(`(?i)nanopb[-_ a-z.]*?v?(\d+\.\d+(?:\.\d+)?)`),
	// "libprotoc 25.1", "libprotoc 3.21.12"
	regexp.MustCompile(`libprotoc (\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`),
}

// parseVersion extracts a version number from --version output, or "" if none.
func parseVersion(output string) string {
	for _, re := range versionPatterns {
		if matches := re.FindStringSubmatch(output); len(matches) >= 2 {
			return matches[1]
		}
	}
	return ""
}
