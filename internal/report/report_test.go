package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babarot/diet/internal/drive"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

var testFolder = drive.Container{ID: "folder-1", Name: "Backups"}

func TestSummaryAdd(t *testing.T) {
	a := Summary{Found: 3, Kept: 1, Deleted: 2}
	b := Summary{Found: 4, Kept: 2, Deleted: 1, Skipped: 0, Errors: 1}

	got := a.Add(b)
	want := Summary{Found: 7, Kept: 3, Deleted: 3, Skipped: 0, Errors: 1}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}

	if (Summary{}).Add(a) != a {
		t.Errorf("zero summary is not the identity")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size *int64
		want string
	}{
		{nil, "N/A"},
		{drive.Int64(0), "0.0 KB"},
		{drive.Int64(1024), "1.0 KB"},
		{drive.Int64(1536), "1.5 KB"},
		{drive.Int64(10 * 1024 * 1024), "10240.0 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSize(tt.size); got != tt.want {
				t.Errorf("FormatSize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.log")

	w, err := NewAppendWriter(path, "", 0)
	if err != nil {
		t.Fatalf("NewAppendWriter() error = %v", err)
	}

	for _, line := range []string{"first\n", "second\n"} {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("journal = %q", data)
	}
}

func TestAppendWriterRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.log")

	w, err := NewAppendWriter(path, "16B", 1)
	if err != nil {
		t.Fatalf("NewAppendWriter() error = %v", err)
	}

	for _, line := range []string{"0123456789\n", "abcdefghij\n", "ABCDEFGHIJ\n"} {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "ABCDEFGHIJ\n" {
		t.Errorf("current journal = %q, want only the last line", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d files, want journal plus one backup", len(entries))
	}
}

func TestAppendWriterInvalidSize(t *testing.T) {
	if _, err := NewAppendWriter(filepath.Join(t.TempDir(), "j.log"), "lots", 1); err == nil {
		t.Error("NewAppendWriter() succeeded with an invalid size")
	}
}

func TestJournal(t *testing.T) {
	var buf bytes.Buffer
	j := NewJournal(&buf, "run-1")
	item := drive.Item{ID: "item-9", Name: "old.tar", Size: drive.Int64(2048)}

	j.Pending(testFolder, item)
	j.Deleted(testFolder, item)
	j.DeleteFailed(testFolder, item, errors.New("quota exceeded"))
	j.Summary(testFolder, Summary{Found: 1, Deleted: 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}

	for i, want := range []string{"will delete", "deleted", "error deleting", "summary"} {
		line := lines[i]
		for _, s := range []string{want, "Backups", "folder-1", "run-1"} {
			if !strings.Contains(line, s) {
				t.Errorf("line %d %q does not contain %q", i, line, s)
			}
		}
	}
	for _, line := range lines[:3] {
		if !strings.Contains(line, "old.tar") || !strings.Contains(line, "item-9") {
			t.Errorf("line %q does not name the item", line)
		}
	}
	if !strings.Contains(lines[2], "quota exceeded") {
		t.Errorf("error line %q lacks the message", lines[2])
	}
}

func TestNilJournal(t *testing.T) {
	var j *Journal
	j.Pending(testFolder, drive.Item{})
	j.Total(Summary{})
}

func TestReporterPending(t *testing.T) {
	var out, journal bytes.Buffer
	r := NewReporter(&out, NewJournal(&journal, "run"), false)

	r.Pending(testFolder, nil)
	if !strings.Contains(out.String(), "No files to remove.") {
		t.Errorf("output = %q", out.String())
	}
	if journal.Len() != 0 {
		t.Errorf("empty remove set journaled %q", journal.String())
	}

	out.Reset()
	r.Pending(testFolder, []drive.Item{
		{ID: "a", Name: "a.log", ModifiedTime: "2024-01-01T00:00:00Z"},
		{ID: "b", Name: "b.log", Size: drive.Int64(512)},
	})
	for _, s := range []string{"Files that will be deleted", "a.log", "b.log", "0.5 KB", "N/A"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output does not contain %q:\n%s", s, out.String())
		}
	}
	if n := strings.Count(journal.String(), "will delete"); n != 2 {
		t.Errorf("journaled %d pending lines, want 2", n)
	}
}

func TestReporterTotal(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, nil, false)
	r.Total(Summary{Found: 5, Kept: 2, Deleted: 2, Skipped: 0, Errors: 1})

	for _, s := range []string{"Total files found: 5", "Total kept: 2", "Total deleted: 2", "Total errors: 1"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output does not contain %q:\n%s", s, out.String())
		}
	}
}
