package report

import "fmt"

// Summary holds the counters of one container, or of a whole run once
// folded together with Add.
type Summary struct {
	// Found is the number of candidates after filtering and the age cutoff
	Found int
	// Kept is the size of the keep set
	Kept int
	// Deleted counts successful deletions
	Deleted int
	// Skipped counts remove-set items left in place without an attempt,
	// in dry-run mode or after a declined confirmation
	Skipped int
	// Errors counts failed deletions
	Errors int
}

// Add returns the field-wise sum of s and o
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Found:   s.Found + o.Found,
		Kept:    s.Kept + o.Kept,
		Deleted: s.Deleted + o.Deleted,
		Skipped: s.Skipped + o.Skipped,
		Errors:  s.Errors + o.Errors,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("found=%d kept=%d deleted=%d skipped=%d errors=%d",
		s.Found, s.Kept, s.Deleted, s.Skipped, s.Errors)
}
