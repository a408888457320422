package retention

import (
	"regexp"
	"strings"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Extension returns the lowercase extension of name including the dot,
// taken after the last ".". Leading dots of hidden files do not count,
// so ".bashrc" has no extension.
func Extension(name string) string {
	base := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i:])
}

// FilterExtensions keeps only the items whose extension is in allow.
// An empty allowlist keeps everything.
func FilterExtensions(items []drive.Item, allow []string) []drive.Item {
	if len(allow) == 0 {
		return items
	}
	allowed := lo.SliceToMap(allow, func(ext string) (string, struct{}) {
		return strings.ToLower(ext), struct{}{}
	})
	return lo.Filter(items, func(item drive.Item, _ int) bool {
		_, ok := allowed[Extension(item.Name)]
		return ok
	})
}

// RejectPattern drops the items whose name matches re anywhere
func RejectPattern(items []drive.Item, re *regexp.Regexp) []drive.Item {
	if re == nil {
		return items
	}
	return lo.Reject(items, func(item drive.Item, _ int) bool {
		return re.MatchString(item.Name)
	})
}

// RejectGlobs drops the items whose name matches any of the globs
func RejectGlobs(items []drive.Item, globs []glob.Glob) []drive.Item {
	if len(globs) == 0 {
		return items
	}
	return lo.Reject(items, func(item drive.Item, _ int) bool {
		return lo.ContainsBy(globs, func(g glob.Glob) bool {
			return g.Match(item.Name)
		})
	})
}

// OlderThan keeps the items modified strictly before now-minAge. Items
// whose modification time is missing or malformed are dropped. A zero
// minAge returns items unchanged.
func OlderThan(items []drive.Item, minAge time.Duration, now time.Time) []drive.Item {
	if minAge <= 0 {
		return items
	}
	cutoff := now.Add(-minAge)
	return lo.Filter(items, func(item drive.Item, _ int) bool {
		t, ok := ParseTimestamp(item.ModifiedTime)
		return ok && t.Before(cutoff)
	})
}
