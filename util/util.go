// Package util collects small helpers shared across the application.
package util

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"unicode"

	"golang.org/x/exp/constraints"
	"golang.org/x/term"

	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/filesystem"
)

// Quantify renders a count with the label matching its plurality.
func Quantify(count int, singular, plural string) string {
	label := plural
	if count == 1 {
		label = singular
	}
	return fmt.Sprintf("%d %s", count, label)
}

// Capitalize uppercases the first rune of s.
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Truncate shortens a string to at most width runes, appending an ellipsis
// when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// TerminalSize reports the character dimensions of the attached terminal.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen wipes the terminal buffer.
func ClearScreen() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case constant.Windows:
		cmd = exec.Command("cmd", "/c", "cls")
	default:
		cmd = exec.Command("tput", "clear")
	}

	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}

// ReGroups maps the named capture groups of pattern onto their matches in s.
// A non-matching string yields an empty map.
func ReGroups(pattern *regexp.Regexp, s string) map[string]string {
	groups := make(map[string]string)
	match := pattern.FindStringSubmatch(s)
	if match == nil {
		return groups
	}

	names := pattern.SubexpNames()
	for i := 1; i < len(match) && i < len(names); i++ {
		if names[i] != "" {
			groups[names[i]] = match[i]
		}
	}
	return groups
}

// PrintErasable writes a transient status line and returns a function that
// erases it again.
func PrintErasable(msg string) (erase func()) {
	fmt.Fprint(os.Stdout, "\r"+msg)
	return func() {
		fmt.Fprint(os.Stdout, "\r\x1b[2K")
	}
}

// Ignore calls f and discards its error.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Delete removes a file or directory tree through the virtualized filesystem.
func Delete(path string) error {
	fs := filesystem.API()
	info, err := fs.Stat(path)
	switch {
	case err != nil:
		return err
	case info.IsDir():
		return fs.RemoveAll(path)
	default:
		return fs.Remove(path)
	}
}
