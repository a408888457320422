package folder

import (
	"context"
	"log/slog"

	"github.com/babarot/diet/internal/drive"
	"github.com/samber/lo"
)

// Enumerator resolves root ids into the flat list of containers to clean
type Enumerator struct {
	lister drive.Lister

	// OnMetadataError is called when a name lookup fails and the id is used instead
	OnMetadataError func(id string, err error)

	// OnListError is called when the subfolders of a container cannot be listed.
	// Enumeration of that subtree stops, the rest continues.
	OnListError func(c drive.Container, err error)
}

// NewEnumerator creates an Enumerator backed by lister
func NewEnumerator(lister drive.Lister) *Enumerator {
	return &Enumerator{lister: lister}
}

// Enumerate returns the root container alone, or with recursive set the root
// followed by every descendant folder in depth-first pre-order. Siblings keep
// the order of the underlying listing.
func (e *Enumerator) Enumerate(ctx context.Context, rootID string, recursive bool) []drive.Container {
	if !recursive {
		return []drive.Container{e.resolve(ctx, rootID)}
	}

	var containers []drive.Container
	e.walk(ctx, rootID, &containers)
	return containers
}

func (e *Enumerator) walk(ctx context.Context, id string, containers *[]drive.Container) {
	c := e.resolve(ctx, id)
	*containers = append(*containers, c)

	if ctx.Err() != nil {
		return
	}

	children, err := e.lister.List(ctx, id, true)
	if err != nil {
		slog.Warn("failed to list subfolders", "folder", c.Name, "id", c.ID, "error", err)
		if e.OnListError != nil {
			e.OnListError(c, err)
		}
		return
	}

	subfolders := lo.Filter(children, func(item drive.Item, _ int) bool {
		return item.IsFolder() && !item.Trashed
	})
	slog.Debug("listed subfolders", "folder", c.Name, "id", c.ID, "count", len(subfolders))

	for _, sub := range subfolders {
		e.walk(ctx, sub.ID, containers)
	}
}

// resolve looks up the display name of id, falling back to the id itself
func (e *Enumerator) resolve(ctx context.Context, id string) drive.Container {
	md, err := e.lister.Metadata(ctx, id)
	if err != nil {
		slog.Warn("failed to resolve folder name", "id", id, "error", err)
		if e.OnMetadataError != nil {
			e.OnMetadataError(id, err)
		}
		return drive.Container{ID: id, Name: id}
	}

	name := md.Name
	if name == "" {
		name = "Unknown"
	}
	return drive.Container{ID: id, Name: name}
}
