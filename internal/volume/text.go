package volume

import "unicode/utf8"

// DecodeText validates that data is well-formed UTF-8 and returns it as
// a string, or a NotText error if it contains invalid sequences. Binary
// file content decoding is explicitly out of scope.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", New(NotText, "")
	}
	return string(data), nil
}
