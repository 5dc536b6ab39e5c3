// Package util holds small helpers shared by the commands and the stores.
package util

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/podfetch/podfetch/filesystem"
	"golang.org/x/term"
)

// forbiddenFilenameChars lists the characters Windows refuses in file names.
var forbiddenFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename removes every character that is not allowed in a Windows file name.
// Everything else, including whitespace, dots and non-ASCII letters, is preserved.
func SanitizeFilename(filename string) string {
	return forbiddenFilenameChars.ReplaceAllString(filename, "")
}

// HumanBytes renders a byte count using binary units.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Quantify prefixes the singular or plural label with count.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize returns the size of the terminal stdout is attached to.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints msg without a line break and returns a func that blanks it again.
// Styled messages are measured by their printable width.
// Nothing is printed when stdout is not a terminal.
func PrintErasable(msg string) (eraser func()) {
	return printErasable(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), msg)
}

func printErasable(out io.Writer, interactive bool, msg string) func() {
	if !interactive {
		return func() {}
	}

	fmt.Fprintf(out, "\r%s", msg)
	return func() {
		fmt.Fprintf(out, "\r%s\r", strings.Repeat(" ", ansi.PrintableRuneWidth(msg)))
	}
}

// Delete removes a file, or a directory with everything below it.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
