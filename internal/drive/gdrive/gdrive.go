// Package gdrive implements the drive gateway on top of the Google Drive v3 API.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/babarot/diet/internal/drive"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	pageSize   = 1000
	listFields = "nextPageToken, files(id, name, modifiedTime, createdTime, mimeType, size, trashed)"

	// Google-native documents have no byte size
	nativePrefix = "application/vnd.google-apps."
)

// Gateway talks to one Drive account
type Gateway struct {
	files *drivev3.FilesService
}

// NewGateway builds a gateway from an authorized HTTP client
func NewGateway(ctx context.Context, client *http.Client) (*Gateway, error) {
	srv, err := drivev3.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Gateway{files: srv.Files}, nil
}

func (g *Gateway) Metadata(ctx context.Context, id string) (drive.Metadata, error) {
	f, err := g.files.Get(id).
		Fields("id, name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return drive.Metadata{}, drive.NewGatewayError("metadata", id, convert(err))
	}
	return drive.Metadata{ID: f.Id, Name: f.Name}, nil
}

func (g *Gateway) List(ctx context.Context, containerID string, foldersOnly bool) ([]drive.Item, error) {
	var items []drive.Item
	err := g.files.List().
		Q(query(containerID, foldersOnly)).
		Fields(listFields).
		OrderBy("modifiedTime").
		PageSize(pageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drivev3.FileList) error {
			for _, f := range page.Files {
				items = append(items, toItem(f))
			}
			return nil
		})
	if err != nil {
		return nil, drive.NewGatewayError("list", containerID, convert(err))
	}
	return items, nil
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	err := g.files.Delete(id).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return drive.NewGatewayError("delete", id, convert(err))
	}
	return nil
}

func query(parent string, foldersOnly bool) string {
	q := fmt.Sprintf("'%s' in parents and trashed = false", strings.ReplaceAll(parent, "'", `\'`))
	if foldersOnly {
		q += fmt.Sprintf(" and mimeType = '%s'", drive.FolderMimeType)
	}
	return q
}

func toItem(f *drivev3.File) drive.Item {
	item := drive.Item{
		ID:           f.Id,
		Name:         f.Name,
		ModifiedTime: f.ModifiedTime,
		CreatedTime:  f.CreatedTime,
		MimeType:     f.MimeType,
		Trashed:      f.Trashed,
	}
	if !strings.HasPrefix(f.MimeType, nativePrefix) {
		item.Size = drive.Int64(f.Size)
	}
	return item
}

func convert(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", drive.ErrNotFound, apiErr.Message)
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", drive.ErrPermissionDenied, apiErr.Message)
	default:
		return err
	}
}
