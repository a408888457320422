package drive

import "context"

// Gateway defines the remote directory capability consumed by the cleaner.
// Implementations paginate internally and return either the complete
// listing or an error.
type Gateway interface {
	// Metadata resolves the id and display name of an item
	Metadata(ctx context.Context, id string) (Metadata, error)

	// List returns the non-trashed children of the container.
	// When foldersOnly is set only folder-typed children are returned.
	List(ctx context.Context, containerID string, foldersOnly bool) ([]Item, error)

	// Delete permanently removes the item
	Delete(ctx context.Context, id string) error
}

// Deleter is the part of Gateway needed to apply a remove set
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Lister is the part of Gateway needed to enumerate containers
type Lister interface {
	Metadata(ctx context.Context, id string) (Metadata, error)
	List(ctx context.Context, containerID string, foldersOnly bool) ([]Item, error)
}
