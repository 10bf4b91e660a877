package volume

import "regexp"

var (
	sepRun   = regexp.MustCompile(`[/\\]+`)
	sepSplit = regexp.MustCompile(`\\`)
)

// SplitPath collapses runs of '/' and '\' separators, strips leading and
// trailing separators, and splits the remainder into path components.
// An empty or all-separator path yields no components.
func SplitPath(path string) []string {
	trimmed := sepRun.ReplaceAllString(path, `\`)
	start, end := 0, len(trimmed)
	for start < end && trimmed[start] == '\\' {
		start++
	}
	for end > start && trimmed[end-1] == '\\' {
		end--
	}
	trimmed = trimmed[start:end]
	if trimmed == "" {
		return nil
	}
	return sepSplit.Split(trimmed, -1)
}
