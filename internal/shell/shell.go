// Package shell implements the interactive command loop browsers use
// to walk a mounted volume: cd, ls, tree, cat, info, exit. It runs a
// plain bufio.Scanner read loop, printing straight to stdout/stderr
// rather than pulling in a command-dispatch framework.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/volume"
)

// Shell runs the interactive REPL over a single open volume.
type Shell struct {
	vol volume.Volume
	in  *bufio.Scanner
	out io.Writer
	log *logger.Logger
}

func New(vol volume.Volume, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	return &Shell{vol: vol, in: bufio.NewScanner(in), out: out, log: log}
}

// Run reads commands until the scanner is exhausted or the user types
// "exit", printing errors rather than stopping the loop on them.
func (s *Shell) Run() {
	fmt.Fprintln(s.out, "Commands: cd <dir>, ls [dir], tree, cat <file>, info, exit")
	for {
		fmt.Fprintf(s.out, "%s> ", s.vol.Cwd())
		if !s.in.Scan() {
			return
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		cmdName, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmdName {
		case "exit", "quit":
			return
		case "cd":
			s.doCd(arg)
		case "ls":
			s.doLs(arg)
		case "tree":
			s.doTree()
		case "cat", "data":
			s.doCat(arg)
		case "info":
			fmt.Fprint(s.out, s.vol.Describe())
		default:
			fmt.Fprintf(s.out, "[ERROR] unknown command %q\n", cmdName)
		}
	}
}

func (s *Shell) doCd(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "[ERROR] please provide a directory")
		return
	}
	if err := s.vol.Chdir(arg); err != nil {
		fmt.Fprintf(s.out, "[ERROR] %v\n", err)
	}
}

func (s *Shell) doLs(arg string) {
	entries, err := s.vol.List(arg)
	if err != nil {
		fmt.Fprintf(s.out, "[ERROR] %v\n", err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s  %-8d  %-20s  %s\n", e.Attr.String(), e.Size, e.Modified.Format("2006-01-02 15:04:05"), e.Name)
	}
}

func (s *Shell) doCat(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "[ERROR] please provide a path")
		return
	}
	text, err := s.vol.ReadText(arg)
	if err != nil {
		fmt.Fprintf(s.out, "[ERROR] %v\n", err)
		return
	}
	fmt.Fprintln(s.out, text)
}

func (s *Shell) doTree() {
	cwd := s.vol.Cwd()
	defer func() {
		if err := s.vol.Chdir(cwd); err != nil && s.log != nil {
			s.log.Warnf("tree: restoring cwd %s: %v", cwd, err)
		}
	}()

	fmt.Fprintln(s.out, cwd)
	entries, err := s.vol.List("")
	if err != nil {
		fmt.Fprintf(s.out, "[ERROR] %v\n", err)
		return
	}
	printTree(s, entries, "")
}
