package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var errNoJournal = errors.New("no journal configured: set journal.path in the config file or pass --logfile")

// showJournal prints the journal, or with live set follows new entries
func showJournal(w io.Writer, path string, live bool) error {
	if path == "" {
		return errNoJournal
	}
	if live {
		return tailJournal(w, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("journal %s does not exist yet: run a clean first", path)
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}

func tailJournal(w io.Writer, path string) error {
	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}
	return t.Err()
}
