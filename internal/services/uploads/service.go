package uploads

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/phambaophuc/image-delivery/internal/config"
	"github.com/phambaophuc/image-delivery/internal/metrics"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/events"
	"github.com/phambaophuc/image-delivery/internal/services/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// maxListLimit is the largest page S3 returns.
	maxListLimit = 1000
	// tagLookupConcurrency bounds parallel tag requests for one listing.
	tagLookupConcurrency = 16
	isoMillis            = "2006-01-02T15:04:05.000Z07:00"
)

// ObjectAPI is the part of the object store the upload API needs.
type ObjectAPI interface {
	Bucket() string
	ObjectURL(key string) string
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	ListObjects(ctx context.Context, in storage.ListInput) (*storage.ListPage, error)
	ObjectTags(ctx context.Context, key string) (map[string]string, error)
	DeleteObject(ctx context.Context, key string) error
}

type Service struct {
	store     ObjectAPI
	publisher events.Publisher
	cfg       config.UploadConfig
	logger    *zap.Logger
}

func NewService(store ObjectAPI, publisher events.Publisher, cfg config.UploadConfig, logger *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, cfg: cfg, logger: logger}
}

// Presign reserves a fresh key and returns a URL the client can PUT the file to.
func (s *Service) Presign(ctx context.Context, req *models.PresignRequest) (resp *models.PresignResponse, err error) {
	defer func() { metrics.RecordObjectOperation("presign", err) }()

	if req.FileName == "" || req.ContentType == "" {
		return nil, invalid("fileName and contentType are required")
	}

	folder := req.Folder
	if folder == "" {
		folder = s.cfg.DefaultFolder
	}
	key := storage.NewUploadKey(folder, req.FileName)

	uploadURL, err := s.store.PresignPut(ctx, key, req.ContentType, s.cfg.PresignTTL)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewObjectEvent(models.EventUploadIssued, s.store.Bucket(), key, req.ContentType))

	s.logger.Info("Upload URL issued",
		zap.String("key", key),
		zap.String("content_type", req.ContentType),
		zap.Duration("ttl", s.cfg.PresignTTL))

	return &models.PresignResponse{
		UploadURL: uploadURL,
		Key:       key,
		FileURL:   s.store.ObjectURL(key),
	}, nil
}

// List returns one page of objects under the project/owner/folder prefix.
func (s *Service) List(ctx context.Context, q models.ListObjectsQuery) (resp *models.ListObjectsResponse, err error) {
	defer func() { metrics.RecordObjectOperation("list", err) }()

	if q.ProjectCode == "" {
		return nil, invalid("projectCode is required")
	}

	page, err := s.store.ListObjects(ctx, storage.ListInput{
		Prefix:  storage.ListPrefix(q.ProjectCode, q.OwnerKey, q.Folder),
		MaxKeys: s.parseLimit(q.Limit),
		Cursor:  q.Cursor,
	})
	if err != nil {
		return nil, err
	}

	objects := make([]models.ObjectSummary, len(page.Objects))
	for i, obj := range page.Objects {
		objects[i] = models.ObjectSummary{
			Key:  obj.Key,
			Size: obj.Size,
		}
		if !obj.LastModified.IsZero() {
			objects[i].LastModified = obj.LastModified.UTC().Format(isoMillis)
		}
	}

	if q.IncludeTags {
		if err := s.attachTags(ctx, objects); err != nil {
			return nil, err
		}
	}

	resp = &models.ListObjectsResponse{Objects: objects}
	if page.NextCursor != "" {
		resp.NextCursor = &page.NextCursor
	}
	return resp, nil
}

// attachTags looks the tags of every object up in parallel. Each goroutine
// writes only its own slice element.
func (s *Service) attachTags(ctx context.Context, objects []models.ObjectSummary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tagLookupConcurrency)

	for i := range objects {
		g.Go(func() error {
			tags, err := s.store.ObjectTags(gctx, objects[i].Key)
			if err != nil {
				return err
			}
			objects[i].Tags = tags
			return nil
		})
	}
	return g.Wait()
}

// Delete removes one object. Keys must be at least projectCode/ownerKey/file.
func (s *Service) Delete(ctx context.Context, req *models.DeleteRequest) (resp *models.DeleteResponse, err error) {
	defer func() { metrics.RecordObjectOperation("delete", err) }()

	if req.Key == "" {
		return nil, invalid("key is required")
	}
	if len(strings.Split(req.Key, "/")) < 3 {
		return nil, invalid("Invalid key format: must contain at least projectCode/ownerKey/file")
	}

	if err := s.store.DeleteObject(ctx, req.Key); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewObjectEvent(models.EventDeleted, s.store.Bucket(), req.Key, ""))
	s.logger.Info("Object deleted", zap.String("key", req.Key))

	return &models.DeleteResponse{Deleted: true, Key: req.Key}, nil
}

// publish never fails the request: the object operation already happened.
func (s *Service) publish(ctx context.Context, event *models.ObjectEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish object event",
			zap.String("type", event.Type),
			zap.String("key", event.Key),
			zap.Error(err))
	}
}

func (s *Service) parseLimit(value string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || limit <= 0 {
		return s.cfg.ListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
