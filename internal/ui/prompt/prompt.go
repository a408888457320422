package prompt

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// stdin is shared by every prompt of the process so that piped answers
// buffered by one read stay available to the next
var stdin = bufio.NewReader(os.Stdin)

// Stdin returns the buffered standard input used by Confirm
func Stdin() *bufio.Reader {
	return stdin
}

// Confirm asks on the terminal. When stdin is not a terminal it falls back
// to reading one line from it.
func Confirm(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return Ask(stdin, os.Stdout, prompt)
	}

	m := New(prompt)
	p := tea.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}

	return m.Selected().IsAccepted()
}

// Ask writes prompt to w and reads one answer line from r. Only "y" (case
// and surrounding space ignored) approves.
func Ask(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s (y/n): ", prompt)

	line, err := readLine(r)
	if err != nil && line == "" {
		fmt.Fprintln(w)
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

// readLine reads up to and including '\n'. Unbuffered readers are read one
// byte at a time so nothing past the line is consumed.
func readLine(r io.Reader) (string, error) {
	if br, ok := r.(*bufio.Reader); ok {
		return br.ReadString('\n')
	}

	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteByte(buf[0])
			if buf[0] == '\n' {
				return b.String(), nil
			}
		}
		if err != nil {
			return b.String(), err
		}
	}
}
