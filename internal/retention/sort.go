package retention

import (
	"cmp"
	"slices"
	"strings"

	"github.com/babarot/diet/internal/drive"
)

// Sort returns a copy of items ordered ascending by key, or descending when
// reverse is set. Items with equal keys keep their relative order in both
// directions.
func Sort(items []drive.Item, key SortKey, reverse bool) []drive.Item {
	compare := comparator(key)
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b drive.Item) int {
		if reverse {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

func comparator(key SortKey) func(a, b drive.Item) int {
	switch key {
	case SortByCreatedTime:
		return func(a, b drive.Item) int {
			return sortTime(a.CreatedTime).Compare(sortTime(b.CreatedTime))
		}
	case SortByName:
		return func(a, b drive.Item) int {
			return strings.Compare(a.Name, b.Name)
		}
	case SortBySize:
		return func(a, b drive.Item) int {
			return cmp.Compare(sizeOf(a), sizeOf(b))
		}
	default:
		return func(a, b drive.Item) int {
			return sortTime(a.ModifiedTime).Compare(sortTime(b.ModifiedTime))
		}
	}
}

func sizeOf(item drive.Item) int64 {
	if item.Size == nil {
		return 0
	}
	return *item.Size
}
