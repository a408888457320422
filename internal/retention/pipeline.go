package retention

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/gobwas/glob"
)

// Plan is the outcome of a retention run over one container
type Plan struct {
	// Keep holds the surviving items, Remove the ones to delete. Both keep
	// the ranking order.
	Keep   []drive.Item
	Remove []drive.Item

	// Filtered counts the items dropped by the extension and exclude filters
	Filtered int

	// TooRecent counts the items dropped by the age cutoff
	TooRecent int
}

// Found is the number of candidates left after every filtering stage
func (p Plan) Found() int {
	return len(p.Keep) + len(p.Remove)
}

// Pipeline partitions item listings into keep and remove sets
type Pipeline struct {
	params  Params
	exclude *regexp.Regexp
	globs   []glob.Glob
	now     func() time.Time
}

type Option func(*Pipeline)

// WithClock replaces the time source of the age cutoff
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New compiles the exclude pattern and globs of params. A negative Keep is
// accepted here and reported by Run for every container, so that the caller
// can skip containers one by one.
func New(params Params, opts ...Option) (*Pipeline, error) {
	if err := params.validate(); err != nil && !errors.Is(err, ErrNegativeKeep) {
		return nil, err
	}

	p := &Pipeline{
		params: params,
		now:    time.Now,
	}
	p.params.Extensions = NormalizeExtensions(params.Extensions)

	if params.Exclude != "" {
		re, err := regexp.Compile(params.Exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", params.Exclude, err)
		}
		p.exclude = re
	}

	for _, pattern := range params.ExcludeGlobs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude glob %q: %w", pattern, err)
		}
		p.globs = append(p.globs, g)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Params returns the parameters the pipeline was built with
func (p *Pipeline) Params() Params {
	return p.params
}

// Run filters, sorts and age-checks items, then splits them into the keep
// and remove sets.
func (p *Pipeline) Run(items []drive.Item) (Plan, error) {
	if p.params.Keep < 0 {
		return Plan{}, ErrNegativeKeep
	}

	candidates := FilterExtensions(items, p.params.Extensions)
	candidates = RejectPattern(candidates, p.exclude)
	candidates = RejectGlobs(candidates, p.globs)
	filtered := len(items) - len(candidates)

	candidates = Sort(candidates, p.params.SortKey, p.params.Reverse)

	sorted := len(candidates)
	candidates = OlderThan(candidates, p.params.MinAge, p.now())

	keep, remove, err := Partition(candidates, p.params.Keep)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Keep:      keep,
		Remove:    remove,
		Filtered:  filtered,
		TooRecent: sorted - len(candidates),
	}, nil
}

// Partition keeps the last keep items of the ranked list and removes the
// rest. With keep == 0 everything is removed.
func Partition(items []drive.Item, keep int) (kept, removed []drive.Item, err error) {
	switch {
	case keep < 0:
		return nil, nil, ErrNegativeKeep
	case keep == 0:
		return []drive.Item{}, items, nil
	case keep >= len(items):
		return items, []drive.Item{}, nil
	default:
		cut := len(items) - keep
		return items[cut:], items[:cut], nil
	}
}
