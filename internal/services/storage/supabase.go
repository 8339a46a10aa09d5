package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phambaophuc/image-delivery/internal/config"
	storage_go "github.com/supabase-community/storage-go"
)

// supabaseLister is the listing call of storage_go.Client.
type supabaseLister interface {
	ListFiles(bucketId string, queryPath string, options storage_go.FileSearchOptions) ([]storage_go.FileObject, error)
}

// SupabaseStore keeps objects in a Supabase Storage bucket. Supabase has no
// object tagging and fixes the lifetime of signed upload URLs server side.
type SupabaseStore struct {
	sbClient *storage_go.Client
	lister   supabaseLister
	bucket   string
}

func NewSupabaseStore(cfg config.SupabaseConfig, bucket string) *SupabaseStore {
	client := storage_go.NewClient(cfg.URL+"/storage/v1", cfg.KEY, nil)
	return &SupabaseStore{
		sbClient: client,
		lister:   client,
		bucket:   bucket,
	}
}

func (s *SupabaseStore) Bucket() string {
	return s.bucket
}

func (s *SupabaseStore) ObjectURL(key string) string {
	return s.sbClient.GetPublicUrl(s.bucket, key).SignedURL
}

func (s *SupabaseStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, err := s.sbClient.DownloadFile(s.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from supabase: %w", key, err)
	}
	return data, nil
}

func (s *SupabaseStore) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	resp, err := s.sbClient.CreateSignedUploadUrl(s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to create signed upload url for %s: %w", key, err)
	}
	return resp.Url, nil
}

// ListObjects lists one folder level; nested folders come back as
// placeholders and are skipped. The cursor is the raw listing offset of the
// next file.
func (s *SupabaseStore) ListObjects(ctx context.Context, in ListInput) (*ListPage, error) {
	offset := 0
	if in.Cursor != "" {
		var err error
		if offset, err = strconv.Atoi(in.Cursor); err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid cursor %q", in.Cursor)
		}
	}

	folder := strings.TrimSuffix(in.Prefix, "/")
	batch := in.MaxKeys + 1
	page := &ListPage{}
	for {
		files, err := s.lister.ListFiles(s.bucket, folder, storage_go.FileSearchOptions{
			Limit:  batch,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s from supabase: %w", in.Prefix, err)
		}

		for i, f := range files {
			// Folder placeholders have no id.
			if f.Id == "" {
				continue
			}
			if len(page.Objects) == in.MaxKeys {
				page.NextCursor = strconv.Itoa(offset + i)
				return page, nil
			}
			updated, _ := time.Parse(time.RFC3339, f.UpdatedAt)
			page.Objects = append(page.Objects, Object{
				Key:          supabaseKey(folder, f.Name),
				Size:         metadataSize(f.Metadata),
				LastModified: updated,
			})
		}

		if len(files) < batch {
			return page, nil
		}
		offset += len(files)
	}
}

func supabaseKey(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func (s *SupabaseStore) ObjectTags(ctx context.Context, key string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *SupabaseStore) DeleteObject(ctx context.Context, key string) error {
	if _, err := s.sbClient.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to remove %s from supabase: %w", key, err)
	}
	return nil
}

func (s *SupabaseStore) HealthCheck(ctx context.Context) error {
	_, err := s.lister.ListFiles(s.bucket, "", storage_go.FileSearchOptions{Limit: 1})
	return err
}

func metadataSize(metadata interface{}) int64 {
	m, ok := metadata.(map[string]interface{})
	if !ok {
		return 0
	}
	if size, ok := m["size"].(float64); ok {
		return int64(size)
	}
	return 0
}
