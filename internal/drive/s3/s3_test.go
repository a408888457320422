package s3

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/babarot/diet/internal/drive"
)

type fakeClient struct {
	objects map[string]int64
	deleted []string
	listErr error
}

func (f *fakeClient) keys() []string {
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	seen := map[string]bool{}
	for _, k := range f.keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if delim != "" {
			if i := strings.Index(rest, delim); i >= 0 {
				cp := prefix + rest[:i+1]
				if !seen[cp] {
					seen[cp] = true
					out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(cp)})
				}
				continue
			}
		}
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(f.objects[k]),
			LastModified: aws.Time(modified),
		})
		if in.MaxKeys != nil && int32(len(out.Contents)) >= *in.MaxKeys {
			break
		}
	}
	out.KeyCount = aws.Int32(int32(len(out.Contents) + len(out.CommonPrefixes)))
	return out, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(in.Key)
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	for _, obj := range in.Delete.Objects {
		key := aws.ToString(obj.Key)
		delete(f.objects, key)
		f.deleted = append(f.deleted, key)
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func newFake() *fakeClient {
	return &fakeClient{objects: map[string]int64{
		"backups/a.tar":       100,
		"backups/b.tar":       200,
		"backups/":            0,
		"backups/old/c.tar":   300,
		"backups/old/d/e.tar": 400,
		"other/readme.txt":    10,
	}}
}

func TestList(t *testing.T) {
	g := NewGatewayWithClient(newFake(), "bucket")

	items, err := g.List(context.Background(), "backups", false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"old", "a.tar", "b.tar"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %v, want %v", names, want)
	}

	if !items[0].IsFolder() || items[0].ID != "backups/old/" || items[0].Size != nil {
		t.Errorf("folder item = %+v", items[0])
	}
	if items[1].Size == nil || *items[1].Size != 100 {
		t.Errorf("a.tar size = %v, want 100", items[1].Size)
	}
	if items[1].ModifiedTime != "2024-05-01T12:00:00Z" {
		t.Errorf("ModifiedTime = %q", items[1].ModifiedTime)
	}
}

func TestListFoldersOnly(t *testing.T) {
	g := NewGatewayWithClient(newFake(), "bucket")

	items, err := g.List(context.Background(), "", true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	for _, it := range items {
		if !it.IsFolder() {
			t.Errorf("%s is not a folder", it.ID)
		}
	}
}

func TestMetadata(t *testing.T) {
	g := NewGatewayWithClient(newFake(), "bucket")
	ctx := context.Background()

	tests := []struct {
		id       string
		wantName string
		notFound bool
	}{
		{id: "", wantName: "bucket"},
		{id: "backups", wantName: "backups"},
		{id: "backups/old/", wantName: "old"},
		{id: "missing", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			md, err := g.Metadata(ctx, tt.id)
			if tt.notFound {
				if !drive.IsNotFound(err) {
					t.Errorf("Metadata() error = %v, want not found", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Metadata() error = %v", err)
			}
			if md.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", md.Name, tt.wantName)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	fake := newFake()
	g := NewGatewayWithClient(fake, "bucket")
	ctx := context.Background()

	if err := g.Delete(ctx, "backups/a.tar"); err != nil {
		t.Fatalf("Delete(object) error = %v", err)
	}
	if _, ok := fake.objects["backups/a.tar"]; ok {
		t.Error("object still present")
	}

	if err := g.Delete(ctx, "backups/old/"); err != nil {
		t.Fatalf("Delete(prefix) error = %v", err)
	}
	for k := range fake.objects {
		if strings.HasPrefix(k, "backups/old/") {
			t.Errorf("%s survived prefix delete", k)
		}
	}
	if _, ok := fake.objects["backups/b.tar"]; !ok {
		t.Error("sibling object removed")
	}
}

func TestListError(t *testing.T) {
	fake := newFake()
	fake.listErr = &types.NoSuchBucket{}
	g := NewGatewayWithClient(fake, "bucket")

	_, err := g.List(context.Background(), "backups", false)
	if !drive.IsNotFound(err) {
		t.Errorf("List() error = %v, want not found", err)
	}
	var gwErr *drive.GatewayError
	if !errors.As(err, &gwErr) || gwErr.Op != "list" {
		t.Errorf("error = %#v, want GatewayError with op list", err)
	}
}
