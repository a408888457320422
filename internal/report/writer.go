package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// AppendWriter appends every Write to a file it opens and closes again
// within the call, so an interrupted run leaves only complete lines behind.
// When maxSize is set the file is rotated before a write would exceed it.
type AppendWriter struct {
	path     string
	maxSize  int64
	maxFiles int
}

// NewAppendWriter creates the parent directory of path. maxSize is a human
// size such as "10MB"; an empty value disables rotation.
func NewAppendWriter(path, maxSize string, maxFiles int) (*AppendWriter, error) {
	w := &AppendWriter{
		path:     path,
		maxFiles: maxFiles,
	}

	if maxSize != "" {
		size, err := units.FromHumanSize(maxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid max size format: %w", err)
		}
		w.maxSize = size
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	return w, nil
}

// Path returns the file the writer appends to
func (w *AppendWriter) Path() string {
	return w.path
}

func (w *AppendWriter) Write(p []byte) (int, error) {
	if w.maxSize > 0 {
		info, err := os.Stat(w.path)
		if err == nil && info.Size() > 0 && info.Size()+int64(len(p)) > w.maxSize {
			if err := w.rotate(); err != nil {
				return 0, err
			}
		}
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}

	n, err := f.Write(p)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (w *AppendWriter) rotate() error {
	timestamp := time.Now().Format("20060102-150405.000000")
	backupPath := fmt.Sprintf("%s.%s", w.path, timestamp)
	if err := os.Rename(w.path, backupPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.removeOldFiles()
}

func (w *AppendWriter) removeOldFiles() error {
	if w.maxFiles <= 0 {
		return nil
	}

	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, f := range files {
		if !f.IsDir() && strings.HasPrefix(f.Name(), base+".") {
			backups = append(backups, f.Name())
		}
	}

	if len(backups) > w.maxFiles {
		sort.Strings(backups)
		for _, f := range backups[:len(backups)-w.maxFiles] {
			if err := os.Remove(filepath.Join(dir, f)); err != nil {
				return err
			}
		}
	}

	return nil
}
