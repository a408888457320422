package gdrive

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/babarot/diet/internal/drive"
	"golang.org/x/oauth2"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name        string
		parent      string
		foldersOnly bool
		want        string
	}{
		{
			name:   "all children",
			parent: "abc",
			want:   "'abc' in parents and trashed = false",
		},
		{
			name:        "folders only",
			parent:      "abc",
			foldersOnly: true,
			want:        "'abc' in parents and trashed = false and mimeType = 'application/vnd.google-apps.folder'",
		},
		{
			name:   "quote escaped",
			parent: "a'b",
			want:   `'a\'b' in parents and trashed = false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := query(tt.parent, tt.foldersOnly); got != tt.want {
				t.Errorf("query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToItem(t *testing.T) {
	binary := toItem(&drivev3.File{
		Id:           "1",
		Name:         "a.zip",
		MimeType:     "application/zip",
		Size:         2048,
		ModifiedTime: "2024-01-01T00:00:00.000Z",
	})
	if binary.Size == nil || *binary.Size != 2048 {
		t.Errorf("binary size = %v, want 2048", binary.Size)
	}
	if binary.ModifiedTime != "2024-01-01T00:00:00.000Z" {
		t.Errorf("ModifiedTime = %q", binary.ModifiedTime)
	}

	doc := toItem(&drivev3.File{Id: "2", Name: "notes", MimeType: "application/vnd.google-apps.document"})
	if doc.Size != nil {
		t.Errorf("native document size = %v, want nil", *doc.Size)
	}

	folder := toItem(&drivev3.File{Id: "3", Name: "sub", MimeType: drive.FolderMimeType})
	if !folder.IsFolder() || folder.Size != nil {
		t.Errorf("folder item = %+v", folder)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, want: drive.ErrNotFound},
		{name: "forbidden", err: &googleapi.Error{Code: http.StatusForbidden}, want: drive.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convert(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("convert() = %v, want %v", got, tt.want)
			}
		})
	}

	other := errors.New("boom")
	if got := convert(other); got != other {
		t.Errorf("convert() = %v, want unchanged", got)
	}
}

func TestTokenCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken() error = %v", err)
	}

	got, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken() error = %v", err)
	}
	if got.AccessToken != tok.AccessToken || got.RefreshToken != tok.RefreshToken || !got.Expiry.Equal(tok.Expiry) {
		t.Errorf("loadToken() = %+v, want %+v", got, tok)
	}

	if _, err := loadToken(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loadToken() on missing file succeeded")
	}
}
