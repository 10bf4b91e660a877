//go:build !linux
// +build !linux

package volpick

import "fmt"

// List has no portable implementation outside Linux; callers should
// take an explicit device or image path instead.
func List() ([]string, error) {
	return nil, fmt.Errorf("volpick: device enumeration is only supported on linux")
}
