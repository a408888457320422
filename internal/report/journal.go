package report

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/utils/log"
)

// Journal records every destructive decision as one text line per event.
// A nil *Journal discards everything.
type Journal struct {
	logger *slog.Logger
}

// NewJournal writes events to w, tagging each line with runID
func NewJournal(w io.Writer, runID string) *Journal {
	logger := log.New(
		log.UseOutput(w),
		log.UseLevel(log.InfoLevel),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.RFC3339),
		log.UseFormatter(log.TextFormatter),
	)
	return &Journal{logger: logger.With("run", runID)}
}

func (j *Journal) event(level slog.Level, msg string, c drive.Container, args ...any) {
	if j == nil {
		return
	}
	args = append([]any{"folder", c.Name, "folder_id", c.ID}, args...)
	j.logger.Log(context.Background(), level, msg, args...)
}

func (j *Journal) Pending(c drive.Container, item drive.Item) {
	j.event(slog.LevelInfo, "will delete", c,
		"name", item.Name, "id", item.ID, "size", FormatSize(item.Size))
}

func (j *Journal) Deleted(c drive.Container, item drive.Item) {
	j.event(slog.LevelInfo, "deleted", c,
		"name", item.Name, "id", item.ID, "size", FormatSize(item.Size))
}

func (j *Journal) DeleteFailed(c drive.Container, item drive.Item, err error) {
	j.event(slog.LevelError, "error deleting", c,
		"name", item.Name, "id", item.ID, "error", err)
}

func (j *Journal) Aborted(c drive.Container, reason string, pending int) {
	j.event(slog.LevelWarn, "deletion skipped", c, "reason", reason, "pending", pending)
}

func (j *Journal) ContainerFailed(c drive.Container, err error) {
	j.event(slog.LevelError, "folder skipped", c, "error", err)
}

func (j *Journal) Summary(c drive.Container, s Summary) {
	j.event(slog.LevelInfo, "summary", c,
		"found", s.Found, "kept", s.Kept, "deleted", s.Deleted, "skipped", s.Skipped, "errors", s.Errors)
}

func (j *Journal) Total(s Summary) {
	if j == nil {
		return
	}
	j.logger.Info("total",
		"found", s.Found, "kept", s.Kept, "deleted", s.Deleted, "skipped", s.Skipped, "errors", s.Errors)
}
