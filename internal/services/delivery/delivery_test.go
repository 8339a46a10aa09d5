package delivery

import (
	"context"
	"errors"
	"image"
	"io"
	"net/http"
	"testing"

	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	mock.Mock
	bucket string
}

func (m *mockStore) Bucket() string { return m.bucket }

func (m *mockStore) ObjectURL(key string) string {
	return "https://" + m.bucket + ".s3.amazonaws.com/" + key
}

func (m *mockStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockPipeline struct {
	mock.Mock
}

func (m *mockPipeline) Decode(data []byte) (image.Image, error) {
	args := m.Called(data)
	img, _ := args.Get(0).(image.Image)
	return img, args.Error(1)
}

func (m *mockPipeline) Metadata(data []byte) (int, int, error) {
	args := m.Called(data)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockPipeline) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	args := m.Called(img, maxWidth, maxHeight)
	return args.Get(0).(image.Image)
}

func (m *mockPipeline) RoundCorners(img image.Image, width, height, radius int) image.Image {
	args := m.Called(img, width, height, radius)
	return args.Get(0).(image.Image)
}

func (m *mockPipeline) Encode(w io.Writer, img image.Image, format models.OutputFormat, quality int) error {
	args := m.Called(w, img, format, quality)
	_, _ = w.Write([]byte("resized-image-data"))
	return args.Error(0)
}

var (
	originalBytes = []byte("original-image-data")
	// A Rectangle is an image.Image with no pixel buffer, which keeps the
	// mock's argument matching cheap.
	decodedImage image.Image = image.Rect(0, 0, 1920, 1080)
)

func newTestService(t *testing.T) (*Service, *mockStore, *mockPipeline) {
	t.Helper()

	store := &mockStore{bucket: "test-bucket"}
	pipeline := &mockPipeline{}

	store.On("GetObject", mock.Anything, "uploads/test-image.jpg").Return(originalBytes, nil).Maybe()
	pipeline.On("Decode", originalBytes).Return(decodedImage, nil).Maybe()
	pipeline.On("Metadata", originalBytes).Return(1920, 1080, nil).Maybe()
	pipeline.On("Resize", mock.Anything, mock.Anything, mock.Anything).Return(decodedImage).Maybe()
	pipeline.On("RoundCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decodedImage).Maybe()
	pipeline.On("Encode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return NewService(store, pipeline, zap.NewNop()), store, pipeline
}

func deliver(t *testing.T, svc *Service, params map[string]string) *Result {
	t.Helper()
	result, err := svc.Deliver(context.Background(), "uploads/test-image.jpg", params)
	require.NoError(t, err)
	return result
}

func TestDeliver_NoParamsRedirects(t *testing.T) {
	svc, store, pipeline := newTestService(t)

	result := deliver(t, svc, map[string]string{})

	assert.Equal(t, http.StatusFound, result.StatusCode)
	assert.Contains(t, result.Location, "test-bucket")
	assert.Contains(t, result.Location, "uploads/test-image.jpg")
	assert.Empty(t, result.Body)
	store.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
	pipeline.AssertNotCalled(t, "Decode", mock.Anything)
	pipeline.AssertNotCalled(t, "Resize", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliver_QualityAndFormatAloneRedirect(t *testing.T) {
	svc, store, _ := newTestService(t)

	result := deliver(t, svc, map[string]string{"q": "90", "f": "png"})

	assert.Equal(t, http.StatusFound, result.StatusCode)
	store.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}

func TestDeliver_WidthOnly(t *testing.T) {
	svc, store, pipeline := newTestService(t)

	result := deliver(t, svc, map[string]string{"w": "100"})

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "resized-image-data", string(result.Body))
	store.AssertCalled(t, "GetObject", mock.Anything, "uploads/test-image.jpg")
	pipeline.AssertCalled(t, "Resize", decodedImage, 100, 0)
}

func TestDeliver_WidthAndHeight(t *testing.T) {
	svc, _, pipeline := newTestService(t)

	deliver(t, svc, map[string]string{"w": "100", "h": "200"})

	pipeline.AssertCalled(t, "Resize", decodedImage, 100, 200)
}

func TestDeliver_FormatSelection(t *testing.T) {
	tests := []struct {
		name        string
		params      map[string]string
		contentType string
		format      models.OutputFormat
	}{
		{"auto without radius is webp", map[string]string{"w": "100"}, "image/webp", models.FormatWebP},
		{"auto with radius is png", map[string]string{"w": "100", "r": "10"}, "image/png", models.FormatPNG},
		{"explicit jpeg", map[string]string{"w": "100", "f": "jpeg"}, "image/jpeg", models.FormatJPEG},
		{"explicit jpeg wins over radius", map[string]string{"w": "100", "r": "10", "f": "jpeg"}, "image/jpeg", models.FormatJPEG},
		{"explicit png", map[string]string{"w": "100", "f": "png"}, "image/png", models.FormatPNG},
		{"explicit webp", map[string]string{"w": "100", "f": "webp"}, "image/webp", models.FormatWebP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, pipeline := newTestService(t)

			result := deliver(t, svc, tt.params)

			assert.Equal(t, tt.contentType, result.ContentType)
			pipeline.AssertCalled(t, "Encode", mock.Anything, mock.Anything, tt.format, 80)
		})
	}
}

func TestDeliver_QualityPropagates(t *testing.T) {
	svc, _, pipeline := newTestService(t)

	deliver(t, svc, map[string]string{"w": "100", "q": "90"})

	pipeline.AssertCalled(t, "Encode", mock.Anything, mock.Anything, models.FormatWebP, 90)
}

func TestDeliver_RadiusTriggersRounding(t *testing.T) {
	svc, _, pipeline := newTestService(t)

	deliver(t, svc, map[string]string{"w": "100", "r": "10"})

	// Height is not given, so the mask takes the stored height.
	pipeline.AssertCalled(t, "RoundCorners", decodedImage, 100, 1080, 10)
}

func TestDeliver_NoRadiusSkipsRounding(t *testing.T) {
	svc, _, pipeline := newTestService(t)

	deliver(t, svc, map[string]string{"w": "100"})

	pipeline.AssertNotCalled(t, "RoundCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pipeline.AssertNotCalled(t, "Metadata", mock.Anything)
}

func TestDeliver_RadiusOnlySkipsResize(t *testing.T) {
	svc, _, pipeline := newTestService(t)

	result := deliver(t, svc, map[string]string{"r": "25"})

	assert.Equal(t, http.StatusOK, result.StatusCode)
	pipeline.AssertNotCalled(t, "Resize", mock.Anything, mock.Anything, mock.Anything)
	pipeline.AssertCalled(t, "RoundCorners", decodedImage, 1920, 1080, 25)
}

func TestDeliver_MaskFallsBackWithoutMetadata(t *testing.T) {
	store := &mockStore{bucket: "test-bucket"}
	store.On("GetObject", mock.Anything, "k").Return(originalBytes, nil)
	pipeline := &mockPipeline{}
	pipeline.On("Decode", originalBytes).Return(decodedImage, nil)
	pipeline.On("Metadata", originalBytes).Return(0, 0, errors.New("unknown format"))
	pipeline.On("RoundCorners", decodedImage, 100, 100, 8).Return(decodedImage)
	pipeline.On("Encode", mock.Anything, mock.Anything, models.FormatPNG, 80).Return(nil)

	svc := NewService(store, pipeline, zap.NewNop())
	_, err := svc.Deliver(context.Background(), "k", map[string]string{"r": "8"})

	require.NoError(t, err)
	pipeline.AssertExpectations(t)
}

func TestDeliver_CacheHeader(t *testing.T) {
	for _, params := range []map[string]string{
		{"w": "100"},
		{"h": "50", "f": "png"},
		{"r": "4", "q": "10"},
	} {
		svc, _, _ := newTestService(t)
		result := deliver(t, svc, params)
		assert.Equal(t, "public, max-age=31536000", result.CacheControl)
	}
}

func TestDeliver_FetchFailure(t *testing.T) {
	store := &mockStore{bucket: "test-bucket"}
	store.On("GetObject", mock.Anything, "k").Return(nil, errors.New("S3 Error"))
	pipeline := &mockPipeline{}

	svc := NewService(store, pipeline, zap.NewNop())
	result, err := svc.Deliver(context.Background(), "k", map[string]string{"w": "100"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrProcessing)
	pipeline.AssertNotCalled(t, "Decode", mock.Anything)
}

func TestDeliver_DecodeFailure(t *testing.T) {
	store := &mockStore{bucket: "test-bucket"}
	store.On("GetObject", mock.Anything, "k").Return([]byte("corrupt"), nil)
	pipeline := &mockPipeline{}
	pipeline.On("Decode", []byte("corrupt")).Return(nil, errors.New("bad header"))

	svc := NewService(store, pipeline, zap.NewNop())
	result, err := svc.Deliver(context.Background(), "k", map[string]string{"h": "10"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrProcessing)
}

func TestDeliver_EncodeFailureReturnsNoBytes(t *testing.T) {
	store := &mockStore{bucket: "test-bucket"}
	store.On("GetObject", mock.Anything, "k").Return(originalBytes, nil)
	pipeline := &mockPipeline{}
	pipeline.On("Decode", originalBytes).Return(decodedImage, nil)
	pipeline.On("Resize", decodedImage, 10, 0).Return(decodedImage)
	pipeline.On("Encode", mock.Anything, mock.Anything, models.FormatWebP, 80).Return(errors.New("encoder crashed"))

	svc := NewService(store, pipeline, zap.NewNop())
	result, err := svc.Deliver(context.Background(), "k", map[string]string{"w": "10"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrProcessing)
}

func TestDeliver_MissingAddress(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Deliver(context.Background(), "", map[string]string{"w": "100"})
	assert.ErrorIs(t, err, ErrMissingAddress)

	noBucket := NewService(&mockStore{}, &mockPipeline{}, zap.NewNop())
	_, err = noBucket.Deliver(context.Background(), "k", nil)
	assert.ErrorIs(t, err, ErrMissingAddress)
}

func TestDeliver_ZeroRadiusRedirects(t *testing.T) {
	for _, params := range []map[string]string{
		{"r": "0"},
		{"r": "0", "q": "50"},
		{"w": "0", "h": "0", "r": "0", "f": "png"},
	} {
		svc, store, pipeline := newTestService(t)

		result := deliver(t, svc, params)

		assert.Equal(t, http.StatusFound, result.StatusCode, "params %v", params)
		assert.Equal(t, "https://test-bucket.s3.amazonaws.com/uploads/test-image.jpg", result.Location)
		store.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
		pipeline.AssertNotCalled(t, "Decode", mock.Anything)
	}
}

func TestDeliver_NegativeRadiusReencodesWithoutRounding(t *testing.T) {
	svc, store, pipeline := newTestService(t)

	result := deliver(t, svc, map[string]string{"r": "-3"})

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "image/webp", result.ContentType)
	store.AssertCalled(t, "GetObject", mock.Anything, "uploads/test-image.jpg")
	pipeline.AssertNotCalled(t, "Resize", mock.Anything, mock.Anything, mock.Anything)
	pipeline.AssertNotCalled(t, "RoundCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
