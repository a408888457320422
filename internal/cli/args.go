package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/babarot/diet/internal/retention"
)

// parseArgs splits "FOLDER_ID... KEEP" into the folder ids and the keep count.
// A negative count is passed through; every folder then reports it and is
// skipped while the run still prints its totals.
func parseArgs(args []string) ([]string, int, error) {
	if len(args) < 2 {
		return nil, 0, errTooFewArgs
	}

	last := args[len(args)-1]
	keep, err := strconv.Atoi(last)
	if err != nil {
		return nil, 0, fmt.Errorf("number of files to keep must be an integer: %q", last)
	}
	return args[:len(args)-1], keep, nil
}

// retentionParams merges the command line over the retention section of
// the config file
func (c CLI) retentionParams(keep int) (retention.Params, error) {
	r := c.config.Retention

	params := retention.Params{
		Keep:         keep,
		SortKey:      retention.SortKey(r.Sort),
		Reverse:      r.Reverse || c.option.Reverse,
		Extensions:   retention.NormalizeExtensions(r.Extensions),
		Exclude:      r.Exclude,
		ExcludeGlobs: r.ExcludeGlobs,
	}

	if c.option.NoReverse {
		params.Reverse = false
	}
	if c.option.Sort != "" {
		params.SortKey = retention.SortKey(c.option.Sort)
	}
	if c.option.Ext != "" {
		params.Extensions = retention.ParseExtensions(c.option.Ext)
	}
	if c.option.Exclude != "" {
		params.Exclude = c.option.Exclude
	}

	minAge, err := r.MinAgeDuration()
	if err != nil {
		return params, fmt.Errorf("invalid retention.min_age: %w", err)
	}
	params.MinAge = minAge

	switch {
	case c.option.OlderThan < 0:
		return params, fmt.Errorf("--older-than cannot be negative: %d", c.option.OlderThan)
	case c.option.OlderThan > 0:
		params.MinAge = time.Duration(c.option.OlderThan) * time.Minute
	}

	return params, nil
}
