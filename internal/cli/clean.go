package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/folder"
	"github.com/babarot/diet/internal/metrics"
	"github.com/babarot/diet/internal/prune"
	"github.com/babarot/diet/internal/report"
	"github.com/babarot/diet/internal/retention"
	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Clean runs the retention policy over every folder id. Failures inside a
// folder are reported and the run moves on; only setup errors are returned.
func (c CLI) Clean(ctx context.Context, ids []string, keep int) error {
	params, err := c.retentionParams(keep)
	if err != nil {
		return err
	}
	pipeline, err := retention.New(params)
	if err != nil {
		return err
	}

	backend := c.backend()
	gateway := c.gateway
	if gateway == nil {
		gateway, err = newGateway(ctx, backend, c.stdin, c.stdout)
		if err != nil {
			return err
		}
	}

	journal, err := c.openJournal()
	if err != nil {
		return err
	}

	dryRun := c.option.DryRun || c.option.TestMode
	reporter := report.NewReporter(c.stdout, journal, c.option.Verbose)
	cleaner := &prune.Cleaner{
		Lister:   gateway,
		Pipeline: pipeline,
		Reporter: reporter,
		Executor: &prune.Executor{
			Deleter:   gateway,
			Confirmer: c.confirmer,
			Reporter:  reporter,
			DryRun:    dryRun,
			Yes:       c.option.Yes,
		},
	}

	enumerator := folder.NewEnumerator(gateway)
	enumerator.OnMetadataError = reporter.MetadataFailed
	enumerator.OnListError = reporter.EnumerationFailed

	recorder := metrics.NewRecorder(backend.Type, dryRun)

	slog.Info("clean started",
		"backend", backend.Type,
		"folders", len(ids),
		"keep", keep,
		"sort", params.SortKey,
		"dry_run", dryRun,
		"recursive", c.option.Recursive,
	)

	var total report.Summary
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		for _, container := range c.enumerate(ctx, enumerator, id) {
			if ctx.Err() != nil {
				slog.Warn("interrupted", "remaining_from", container.ID)
				break
			}
			s := cleaner.Clean(ctx, container)
			total = total.Add(s)
			recorder.Observe(s)
		}
	}

	reporter.Total(total)
	slog.Info("clean finished", "total", total.String())

	if path := c.metricsPath(); path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			slog.Warn("failed to write metrics", "path", path, "error", err)
		}
	}
	return nil
}

// enumerate resolves the containers under id, showing a spinner on
// terminals while a recursive walk is in progress
func (c CLI) enumerate(ctx context.Context, e *folder.Enumerator, id string) []drive.Container {
	if !c.option.Recursive || !isatty.IsTerminal(os.Stderr.Fd()) {
		return e.Enumerate(ctx, id, c.option.Recursive)
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = fmt.Sprintf(" Fetching folders under %s ...", id)
	sp.Start()
	containers := e.Enumerate(ctx, id, true)
	sp.Stop()
	return containers
}

func (c CLI) openJournal() (*report.Journal, error) {
	path := c.journalPath()
	if path == "" {
		return nil, nil
	}
	rotation := c.config.Journal.Rotation
	w, err := report.NewAppendWriter(path, rotation.MaxSize, rotation.MaxFiles)
	if err != nil {
		return nil, err
	}
	slog.Debug("journal enabled", "path", w.Path())
	return report.NewJournal(w, c.runID), nil
}

func (c CLI) metricsPath() string {
	if c.option.MetricsFile != "" {
		return c.option.MetricsFile
	}
	return c.config.Metrics.Textfile
}
