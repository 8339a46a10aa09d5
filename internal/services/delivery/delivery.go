package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/phambaophuc/image-delivery/internal/metrics"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/processor"
	"go.uber.org/zap"
)

// CacheControl lets the CDN keep a rendition for a year. The full URL,
// query string included, is the cache key.
const CacheControl = "public, max-age=31536000"

var (
	// ErrMissingAddress means no bucket is configured or no key was routed.
	ErrMissingAddress = errors.New("missing bucket or key")
	// ErrProcessing wraps every fetch, decode, resize, composite or encode failure.
	ErrProcessing = errors.New("image processing failed")
)

// ObjectReader is the part of the object store the delivery path needs.
type ObjectReader interface {
	Bucket() string
	ObjectURL(key string) string
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// Pipeline performs the individual image operations.
type Pipeline interface {
	Decode(data []byte) (image.Image, error)
	Metadata(data []byte) (width, height int, err error)
	Resize(img image.Image, maxWidth, maxHeight int) image.Image
	RoundCorners(img image.Image, width, height, radius int) image.Image
	Encode(w io.Writer, img image.Image, format models.OutputFormat, quality int) error
}

// Result is either a redirect (Location set) or an encoded image.
type Result struct {
	StatusCode   int
	Location     string
	ContentType  string
	CacheControl string
	Body         []byte
}

type Service struct {
	store    ObjectReader
	pipeline Pipeline
	logger   *zap.Logger
}

func NewService(store ObjectReader, pipeline Pipeline, logger *zap.Logger) *Service {
	return &Service{store: store, pipeline: pipeline, logger: logger}
}

// Deliver serves key according to the transform parameters in params.
func (s *Service) Deliver(ctx context.Context, key string, params map[string]string) (*Result, error) {
	if s.store.Bucket() == "" || key == "" {
		metrics.RecordDelivery(metrics.OutcomeBadRequest)
		return nil, ErrMissingAddress
	}

	req := ParseResizeRequest(params)
	if req.IsPassThrough() {
		metrics.RecordDelivery(metrics.OutcomeRedirect)
		return &Result{
			StatusCode: http.StatusFound,
			Location:   s.store.ObjectURL(key),
		}, nil
	}

	start := time.Now()
	result, err := s.transform(ctx, key, req)
	if err != nil {
		metrics.RecordDelivery(metrics.OutcomeError)
		s.logger.Error("Image processing failed",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	metrics.RecordTransform(result.ContentType, time.Since(start).Seconds())
	s.logger.Info("Image transformed",
		zap.String("key", key),
		zap.String("content_type", result.ContentType),
		zap.Int("bytes", len(result.Body)),
		zap.Duration("latency", time.Since(start)))
	return result, nil
}

func (s *Service) transform(ctx context.Context, key string, req *models.ResizeRequest) (*Result, error) {
	data, err := s.store.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}

	img, err := s.pipeline.Decode(data)
	if err != nil {
		return nil, err
	}

	if req.HasResize() {
		img = s.pipeline.Resize(img, deref(req.Width), deref(req.Height))
	}

	if req.HasRounding() {
		width, height := s.maskSize(data, req, img.Bounds())
		img = s.pipeline.RoundCorners(img, width, height, *req.Radius)
	}

	format := req.ResolveFormat()
	buf := &bytes.Buffer{}
	if err := s.pipeline.Encode(buf, img, format, req.Quality); err != nil {
		return nil, err
	}

	return &Result{
		StatusCode:   http.StatusOK,
		ContentType:  format.ContentType(),
		CacheControl: CacheControl,
		Body:         buf.Bytes(),
	}, nil
}

// maskSize prefers explicit dimensions, then the stored image's metadata,
// then processor.FallbackDimension. A metadata dimension is clamped to the
// working image so that a one-sided resize still rounds all four corners.
func (s *Service) maskSize(data []byte, req *models.ResizeRequest, bounds image.Rectangle) (int, int) {
	metaWidth, metaHeight, err := s.pipeline.Metadata(data)
	if err != nil {
		s.logger.Warn("Image metadata unavailable", zap.Error(err))
	}

	width := firstPositive(deref(req.Width), min(metaWidth, bounds.Dx()), processor.FallbackDimension)
	height := firstPositive(deref(req.Height), min(metaHeight, bounds.Dy()), processor.FallbackDimension)
	return width, height
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
