package shell

import (
	"fmt"

	"github.com/corvidae/rawvol/internal/volume"
)

// printTree recursively prints entries using box-drawing prefixes,
// descending into subdirectories and restoring cwd as it backs out of
// each one.
func printTree(s *Shell, entries []volume.Entry, prefix string) {
	for i, e := range entries {
		last := i == len(entries)-1
		branch := "├── "
		if last {
			branch = "└── "
		}
		fmt.Fprintf(s.out, "%s%-40s  size: %d\n", prefix+branch, e.Name, e.Size)

		if !e.IsDir() || e.Name == "." || e.Name == ".." {
			continue
		}

		childPrefix := prefix + "│   "
		if last {
			childPrefix = prefix + "    "
		}

		if err := s.vol.Chdir(e.Name); err != nil {
			fmt.Fprintf(s.out, "%s[ERROR] %v\n", childPrefix, err)
			continue
		}
		children, err := s.vol.List("")
		if err == nil {
			printTree(s, children, childPrefix)
		}
		if err := s.vol.Chdir(".."); err != nil && s.log != nil {
			s.log.Warnf("tree: returning from %s: %v", e.Name, err)
		}
	}
}
