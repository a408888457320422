package drive

// FolderMimeType marks an item as a container on every backend
const FolderMimeType = "application/vnd.google-apps.folder"

// Item represents a file or folder as returned by a listing call
type Item struct {
	// ID is the opaque identifier, unique within the store
	ID string

	// Name is the display name, not unique
	Name string

	// ModifiedTime and CreatedTime are ISO-8601 timestamps as delivered by
	// the backend. They are kept raw so that malformed values can be handled
	// leniently by the retention pipeline.
	ModifiedTime string
	CreatedTime  string

	MimeType string

	// Size is the byte count, nil when the backend does not report one
	Size *int64

	Trashed bool
}

// IsFolder reports whether the item is a container
func (i Item) IsFolder() bool {
	return i.MimeType == FolderMimeType
}

// Container is a folder acting as the scope of a listing
type Container struct {
	ID   string
	Name string
}

func (c Container) String() string {
	return c.Name + " (" + c.ID + ")"
}

// Metadata is the result of a metadata lookup
type Metadata struct {
	ID   string
	Name string
}

// Int64 returns a pointer to n, for building items with a known size
func Int64(n int64) *int64 {
	return &n
}
