// Package term provides TTY detection and the interactive confirmation
// prompt used before duplicate deletion.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "golang.org/x/term"
)

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// Confirm prints question with a "(y/n)" suffix on out and reads one line
// from in. Only "y" and "yes" (case-insensitive) count as consent; any
// other answer, including read failure, is a no.
func Confirm(question string, in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "%s (y/n) ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ConfirmStdin is Confirm bound to the process's stdin/stdout.
func ConfirmStdin(question string) bool {
	return Confirm(question, os.Stdin, os.Stdout)
}
