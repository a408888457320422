// Package local serves directories of the local filesystem as containers.
// Item ids are absolute paths.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/gabriel-vasile/mimetype"
)

// Gateway implements drive.Gateway on top of the local filesystem
type Gateway struct {
	root string
}

// NewGateway creates a gateway. Relative ids are resolved against root;
// an empty root means the working directory.
func NewGateway(root string) (*Gateway, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Gateway{root: abs}, nil
}

func (g *Gateway) path(id string) string {
	if filepath.IsAbs(id) {
		return filepath.Clean(id)
	}
	return filepath.Join(g.root, id)
}

func (g *Gateway) Metadata(ctx context.Context, id string) (drive.Metadata, error) {
	path := g.path(id)
	if _, err := os.Stat(path); err != nil {
		return drive.Metadata{}, drive.NewGatewayError("metadata", id, convert(err))
	}
	return drive.Metadata{ID: id, Name: filepath.Base(path)}, nil
}

func (g *Gateway) List(ctx context.Context, containerID string, foldersOnly bool) ([]drive.Item, error) {
	dir := g.path(containerID)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, drive.NewGatewayError("list", containerID, convert(err))
	}
	if !info.IsDir() {
		return nil, drive.NewGatewayError("list", containerID, drive.ErrNotContainer)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, drive.NewGatewayError("list", containerID, convert(err))
	}

	var items []drive.Item
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if foldersOnly && !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			slog.Debug("skipped vanished entry", "name", entry.Name(), "error", err)
			continue
		}
		items = append(items, newItem(filepath.Join(dir, entry.Name()), info))
	}

	return items, nil
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	if g.isUnsafePath(id) {
		return drive.NewGatewayError("delete", id, fmt.Errorf("%w: refusing to remove %q", drive.ErrPermissionDenied, id))
	}
	path := g.path(id)
	if _, err := os.Lstat(path); err != nil {
		return drive.NewGatewayError("delete", id, convert(err))
	}
	if err := os.RemoveAll(path); err != nil {
		return drive.NewGatewayError("delete", id, convert(err))
	}
	return nil
}

func newItem(path string, info fs.FileInfo) drive.Item {
	modified := info.ModTime().UTC().Format(time.RFC3339Nano)
	item := drive.Item{
		ID:           path,
		Name:         info.Name(),
		ModifiedTime: modified,
		// no portable birth time, the modification time stands in
		CreatedTime: modified,
	}

	if info.IsDir() {
		item.MimeType = drive.FolderMimeType
		return item
	}

	item.Size = drive.Int64(info.Size())
	if info.Mode().IsRegular() {
		if mtype, err := mimetype.DetectFile(path); err == nil {
			item.MimeType = mtype.String()
		}
	}
	return item
}

func convert(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", drive.ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", drive.ErrPermissionDenied, err)
	default:
		return err
	}
}
