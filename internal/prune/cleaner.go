package prune

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/report"
	"github.com/babarot/diet/internal/retention"
)

// Cleaner runs the retention pipeline and the executor over one container
type Cleaner struct {
	Lister   drive.Lister
	Pipeline *retention.Pipeline
	Executor *Executor
	Reporter *report.Reporter
}

// Clean lists c, partitions its items and deletes the remove set. A listing
// failure or an invalid configuration skips the container with a zero summary.
func (cl *Cleaner) Clean(ctx context.Context, c drive.Container) report.Summary {
	slog.Debug("cleaning folder started", "folder", c.Name, "id", c.ID)
	defer slog.Debug("cleaning folder finished", "folder", c.Name, "id", c.ID)

	cl.Reporter.BeginContainer(c)

	items, err := cl.Lister.List(ctx, c.ID, false)
	if err != nil {
		cl.Reporter.ContainerFailed(c, fmt.Errorf("listing failed: %w", err))
		cl.Reporter.ContainerSummary(c, report.Summary{})
		return report.Summary{}
	}

	plan, err := cl.Pipeline.Run(items)
	if err != nil {
		cl.Reporter.ContainerFailed(c, err)
		cl.Reporter.ContainerSummary(c, report.Summary{})
		return report.Summary{}
	}
	cl.Reporter.Filtered(c, plan.Filtered, plan.TooRecent)

	summary := cl.Executor.Execute(ctx, plan.Remove, c)
	summary.Found = plan.Found()
	summary.Kept = len(plan.Keep)

	cl.Reporter.ContainerSummary(c, summary)
	return summary
}
