package prune

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/report"
)

// Confirmer decides whether a pending deletion may proceed
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Executor applies a remove set against the gateway
type Executor struct {
	Deleter   drive.Deleter
	Confirmer Confirmer
	Reporter  *report.Reporter

	// DryRun reports the remove set without deleting anything
	DryRun bool

	// Yes skips the confirmation prompt
	Yes bool
}

// Execute reports remove, then deletes each item once, in order. A failed
// deletion is counted and the loop moves on. The returned summary only
// carries Deleted, Skipped and Errors.
func (e *Executor) Execute(ctx context.Context, remove []drive.Item, c drive.Container) report.Summary {
	var summary report.Summary

	e.Reporter.Pending(c, remove)

	if e.DryRun {
		e.Reporter.DryRun(c, len(remove))
		summary.Skipped = len(remove)
		return summary
	}

	if len(remove) == 0 {
		return summary
	}

	if !e.Yes {
		prompt := fmt.Sprintf("Proceed with deletion of %d files in %s?", len(remove), c.Name)
		if e.Confirmer == nil || !e.Confirmer.Confirm(prompt) {
			slog.Info("deletion declined", "folder", c.Name, "id", c.ID, "pending", len(remove))
			e.Reporter.Declined(c, len(remove))
			summary.Skipped = len(remove)
			return summary
		}
	}

	for i, item := range remove {
		if err := ctx.Err(); err != nil {
			summary.Skipped = len(remove) - i
			e.Reporter.ContainerFailed(c, fmt.Errorf("deletion interrupted: %w", err))
			break
		}

		e.Reporter.Deleting(c, item)
		if err := e.Deleter.Delete(ctx, item.ID); err != nil {
			slog.Error("failed to delete item", "name", item.Name, "id", item.ID, "error", err)
			summary.Errors++
			e.Reporter.DeleteFailed(c, item, err)
			continue
		}
		slog.Debug("deleted item", "name", item.Name, "id", item.ID)
		summary.Deleted++
		e.Reporter.Deleted(c, item)
	}

	return summary
}
