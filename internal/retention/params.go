package retention

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SortKey names the item attribute used to rank candidates
type SortKey string

const (
	SortByModifiedTime SortKey = "modifiedTime"
	SortByCreatedTime  SortKey = "createdTime"
	SortByName         SortKey = "name"
	SortBySize         SortKey = "size"
)

// SortKeys lists every supported key, in help order
var SortKeys = []SortKey{SortByModifiedTime, SortByCreatedTime, SortByName, SortBySize}

var (
	// ErrNegativeKeep is returned when the number of items to keep is below zero
	ErrNegativeKeep = errors.New("number of items to keep cannot be < 0")

	// ErrUnknownSortKey is returned for a sort key outside SortKeys
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// Params configures a retention run. It is built once and never mutated.
type Params struct {
	// Keep is how many of the highest-ranked items survive
	Keep int

	SortKey SortKey
	Reverse bool

	// Extensions restricts candidates to these extensions (".pdf", ".jpg").
	// Empty means every item is a candidate.
	Extensions []string

	// Exclude drops items whose name matches this regular expression anywhere
	Exclude string

	// ExcludeGlobs drops items whose name matches any of these globs
	ExcludeGlobs []string

	// MinAge only lets items through whose modification time is older than
	// this. Zero disables the cutoff.
	MinAge time.Duration
}

func (p Params) validate() error {
	if p.Keep < 0 {
		return ErrNegativeKeep
	}
	switch p.SortKey {
	case "", SortByModifiedTime, SortByCreatedTime, SortByName, SortBySize:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, p.SortKey)
	}
	return nil
}

// ParseExtensions splits a comma-separated allowlist such as ".pdf,JPG"
// into normalised lowercase extensions with a leading dot.
func ParseExtensions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeExtensions(strings.Split(s, ","))
}

// NormalizeExtensions lowercases the extensions and makes sure each one
// starts with a dot. Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	var normalized []string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
