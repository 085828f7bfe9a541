package uploader

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, filename, data, contentType)
	return args.String(0), args.Error(1)
}

func newService(store Store) *Service {
	return NewService(store, zerolog.Nop())
}

func file(name string) File {
	return File{Name: name, ContentType: "image/png", Data: []byte{0x89, 0x50}}
}

func TestUploadBatch_AllSucceed(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	ctx := context.Background()

	store.On("Upload", ctx, "a.png", mock.Anything, "image/png").Return("https://img.test/a", nil)
	store.On("Upload", ctx, "b.png", mock.Anything, "image/png").Return("https://img.test/b", nil)

	images, results, err := svc.UploadBatch(ctx, nil, []File{file("a.png"), file("b.png")})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/a", "https://img.test/b"}, images)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Err)
	assert.Empty(t, results[1].Err)
	store.AssertExpectations(t)
}

func TestUploadBatch_PartialFailure(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	ctx := context.Background()

	// B fails; A's URL is still accumulated and the form stays usable.
	store.On("Upload", ctx, "a.png", mock.Anything, "image/png").Return("https://img.test/a", nil)
	store.On("Upload", ctx, "b.png", mock.Anything, "image/png").Return("", errors.New("remote host down"))

	images, results, err := svc.UploadBatch(ctx, nil, []File{file("a.png"), file("b.png")})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img.test/a"}, images)
	require.Len(t, results, 2)
	assert.Equal(t, "https://img.test/a", results[0].URL)
	assert.Empty(t, results[0].Err)
	assert.Empty(t, results[1].URL)
	assert.Equal(t, "image upload failed", results[1].Err)
}

func TestUploadBatch_FailureDoesNotBlockLaterFiles(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	ctx := context.Background()

	store.On("Upload", ctx, "a.png", mock.Anything, "image/png").Return("", errors.New("timeout"))
	store.On("Upload", ctx, "b.png", mock.Anything, "image/png").Return("https://img.test/b", nil)

	images, results, err := svc.UploadBatch(ctx, nil, []File{file("a.png"), file("b.png")})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img.test/b"}, images)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Err)
	assert.Equal(t, "https://img.test/b", results[1].URL)
}

func TestUploadBatch_RejectsOverflowWhole(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)

	existing := []string{"https://img.test/1", "https://img.test/2"}
	images, results, err := svc.UploadBatch(context.Background(), existing, []File{file("a.png"), file("b.png")})

	require.ErrorIs(t, err, ErrTooManyImages)
	// Existing list untouched, nothing uploaded, no partial acceptance.
	assert.Equal(t, existing, images)
	assert.Empty(t, results)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadBatch_ExactlyAtCap(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	ctx := context.Background()

	store.On("Upload", ctx, "c.png", mock.Anything, "image/png").Return("https://img.test/c", nil)

	existing := []string{"https://img.test/1", "https://img.test/2"}
	images, _, err := svc.UploadBatch(ctx, existing, []File{file("c.png")})
	require.NoError(t, err)
	assert.Len(t, images, 3)
}

func TestUploadBatch_DoesNotMutateExisting(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	ctx := context.Background()

	store.On("Upload", ctx, "a.png", mock.Anything, "image/png").Return("https://img.test/a", nil)

	existing := make([]string, 1, 4)
	existing[0] = "https://img.test/1"
	images, _, err := svc.UploadBatch(ctx, existing, []File{file("a.png")})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img.test/1"}, existing)
	assert.Equal(t, []string{"https://img.test/1", "https://img.test/a"}, images)
}

func TestRemoveImage(t *testing.T) {
	images := []string{"https://img.test/a", "https://img.test/b", "https://img.test/c"}

	got := RemoveImage(images, "https://img.test/b")
	assert.Equal(t, []string{"https://img.test/a", "https://img.test/c"}, got)

	// Unknown URL leaves the list unchanged.
	got = RemoveImage(images, "https://img.test/x")
	assert.Equal(t, images, got)

	assert.Empty(t, RemoveImage([]string{"https://img.test/a"}, "https://img.test/a"))
}
