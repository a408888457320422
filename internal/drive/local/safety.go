package local

import (
	"path/filepath"
	"strings"
)

// isUnsafePath reports whether id must never be removed: ".", "..", the
// filesystem root, or the gateway root itself.
func (g *Gateway) isUnsafePath(id string) bool {
	// check the raw input first so "." and ".." are caught before cleaning
	base := filepath.Base(id)
	if base == "." || base == ".." {
		return true
	}

	if strings.HasPrefix(id, "//") {
		return true
	}

	cleaned := g.path(id)
	if cleaned == filepath.Dir(cleaned) {
		// filesystem root
		return true
	}
	return cleaned == g.root
}
