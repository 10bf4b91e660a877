package blockdev

import (
	"runtime"
	"strings"
	"unicode"
)

// NormalizeVolumePath rewrites a bare drive letter like "C:" or "C:\"
// into the raw volume path Windows expects, \\.\C:. Left unchanged on
// every other platform and for paths that aren't a drive letter.
func NormalizeVolumePath(path string) string {
	if runtime.GOOS != "windows" {
		return path
	}

	path = strings.TrimSpace(path)
	path = strings.ReplaceAll(path, "/", `\`)
	upper := strings.ToUpper(path)

	if strings.HasPrefix(upper, `\\.\`) {
		return upper
	}
	bare := len(upper) == 2 || (len(upper) == 3 && upper[2] == '\\')
	if bare && upper[1] == ':' && unicode.IsLetter(rune(upper[0])) {
		return `\\.\` + string(upper[0]) + `:`
	}
	return path
}
