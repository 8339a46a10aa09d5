package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

// fakeLister serves a fixed folder listing by offset and limit.
type fakeLister struct {
	files []storage_go.FileObject
	calls []storage_go.FileSearchOptions
	paths []string
	err   error
}

func (f *fakeLister) ListFiles(bucketId string, queryPath string, options storage_go.FileSearchOptions) ([]storage_go.FileObject, error) {
	f.calls = append(f.calls, options)
	f.paths = append(f.paths, queryPath)
	if f.err != nil {
		return nil, f.err
	}
	start := min(options.Offset, len(f.files))
	end := min(start+options.Limit, len(f.files))
	return f.files[start:end], nil
}

func supabaseFile(name string) storage_go.FileObject {
	return storage_go.FileObject{
		Name:      name,
		Id:        "id-" + name,
		UpdatedAt: "2024-05-01T10:00:00Z",
		Metadata:  map[string]interface{}{"size": float64(100)},
	}
}

func supabaseFolder(name string) storage_go.FileObject {
	return storage_go.FileObject{Name: name}
}

func objectKeys(page *ListPage) []string {
	out := make([]string, 0, len(page.Objects))
	for _, o := range page.Objects {
		out = append(out, o.Key)
	}
	return out
}

func TestMetadataSize(t *testing.T) {
	assert.Equal(t, int64(2048), metadataSize(map[string]interface{}{"size": float64(2048)}))
	assert.Zero(t, metadataSize(map[string]interface{}{"mimetype": "image/png"}))
	assert.Zero(t, metadataSize(nil))
}

func TestSupabaseStore_ListObjectsSkipsFoldersBeforeLimit(t *testing.T) {
	lister := &fakeLister{files: []storage_go.FileObject{
		supabaseFolder("archive"),
		supabaseFolder("thumbs"),
		supabaseFile("a.png"),
		supabaseFolder("zz"),
		supabaseFile("b.png"),
		supabaseFile("c.png"),
	}}
	store := &SupabaseStore{lister: lister, bucket: "test-bucket"}

	page, err := store.ListObjects(context.Background(), ListInput{Prefix: "products/", MaxKeys: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"products/a.png", "products/b.png"}, objectKeys(page))
	assert.Equal(t, "5", page.NextCursor)
	assert.Equal(t, int64(100), page.Objects[0].Size)
	assert.Equal(t, 2024, page.Objects[0].LastModified.Year())
	assert.Equal(t, "products", lister.paths[0])

	next, err := store.ListObjects(context.Background(), ListInput{Prefix: "products/", MaxKeys: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"products/c.png"}, objectKeys(next))
	assert.Empty(t, next.NextCursor)
}

func TestSupabaseStore_ListObjectsFullPageWithoutMore(t *testing.T) {
	lister := &fakeLister{files: []storage_go.FileObject{supabaseFile("a.png"), supabaseFolder("sub"), supabaseFile("b.png")}}
	store := &SupabaseStore{lister: lister, bucket: "test-bucket"}

	page, err := store.ListObjects(context.Background(), ListInput{MaxKeys: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.png"}, objectKeys(page))
	assert.Empty(t, page.NextCursor)
	assert.Equal(t, "", lister.paths[0])
}

func TestSupabaseStore_ListObjectsInvalidCursor(t *testing.T) {
	store := &SupabaseStore{lister: &fakeLister{}, bucket: "test-bucket"}

	_, err := store.ListObjects(context.Background(), ListInput{MaxKeys: 2, Cursor: "abc"})
	assert.Error(t, err)
}

func TestSupabaseStore_ListObjectsError(t *testing.T) {
	store := &SupabaseStore{lister: &fakeLister{err: errors.New("boom")}, bucket: "test-bucket"}

	_, err := store.ListObjects(context.Background(), ListInput{Prefix: "products/", MaxKeys: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list products/")
}
