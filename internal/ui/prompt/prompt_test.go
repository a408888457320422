package prompt

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "upper yes with space", input: "  Y \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "word yes is not y", input: "yes\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "eof", input: "", want: false},
		{name: "no trailing newline", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Ask(strings.NewReader(tt.input), &out, "Proceed with deletion?")
			if got != tt.want {
				t.Errorf("Ask() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Proceed with deletion? (y/n): ") {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestAskConsecutivePipedAnswers(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })

	if _, err := w.WriteString("y\nn\ny\n"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	want := []bool{true, false, true}
	for i, expect := range want {
		if got := Ask(r, &bytes.Buffer{}, "Proceed with deletion?"); got != expect {
			t.Errorf("answer %d = %v, want %v", i+1, got, expect)
		}
	}
	if Ask(r, &bytes.Buffer{}, "Proceed with deletion?") {
		t.Error("answer after the last line approved")
	}
}

func TestAskSharedBufferedReader(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("code-123\ny\n"))

	// an earlier consumer of the same reader, such as the authorization flow
	code, err := in.ReadString('\n')
	if err != nil || code != "code-123\n" {
		t.Fatalf("ReadString() = %q, %v", code, err)
	}

	if !Ask(in, &bytes.Buffer{}, "Proceed with deletion?") {
		t.Error("Ask() lost the answer buffered by the earlier read")
	}
}

func TestModelUpdate(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Decision
		quit bool
	}{
		{name: "y accepts", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, want: Accepted, quit: true},
		{name: "Y accepts", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, want: Accepted, quit: true},
		{name: "n denies", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, want: Denied, quit: true},
		{name: "esc denies", msg: tea.KeyMsg{Type: tea.KeyEsc}, want: Denied, quit: true},
		{name: "enter takes default", msg: tea.KeyMsg{Type: tea.KeyEnter}, want: Denied, quit: true},
		{name: "other key ignored", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, want: Denied, quit: false},
		{name: "digit ignored", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}}, want: Denied, quit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("Delete?")
			m.Init()

			_, cmd := m.Update(tt.msg)
			if got := m.Selected(); got != tt.want {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
			if (cmd != nil) != tt.quit {
				t.Errorf("quit = %v, want %v", cmd != nil, tt.quit)
			}
		})
	}
}

func TestModelView(t *testing.T) {
	m := New("Delete?")
	m.Init()
	if v := m.View(); !strings.Contains(v, "Delete?") {
		t.Errorf("View() = %q, want prompt", v)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if v := m.View(); !strings.Contains(v, "Delete?") || !strings.HasSuffix(v, "y\n") {
		t.Errorf("View() after answer = %q", v)
	}
}
