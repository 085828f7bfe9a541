// Package uploader implements the product image upload workflow: a batch of
// selected files is accepted or rejected as a whole against the per-product
// image cap, then each accepted file is uploaded independently so that one
// failure never blocks or rolls back the others.
package uploader

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edvin/tradelink/internal/model"
)

// ErrTooManyImages rejects a whole batch that would push the accumulated
// image count past the cap.
var ErrTooManyImages = errors.New("a product can have at most 3 images")

// Store is the remote image host.
type Store interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// File is one selected image, read fully into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result reports the outcome of one file's upload.
type Result struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Err  string `json:"error,omitempty"`
}

type Service struct {
	store  Store
	logger zerolog.Logger
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "uploader").Logger(),
	}
}

// UploadBatch uploads the files one at a time. If existing plus the new batch
// would exceed the image cap, the whole batch is rejected and nothing is
// uploaded. Otherwise every file is attempted: successes append their URL to
// the accumulated list in completion order, failures produce a per-file error
// result and do not stop the rest of the batch.
func (s *Service) UploadBatch(ctx context.Context, existing []string, files []File) ([]string, []Result, error) {
	if len(existing)+len(files) > model.MaxProductImages {
		return existing, nil, ErrTooManyImages
	}

	images := make([]string, len(existing))
	copy(images, existing)

	results := make([]Result, 0, len(files))
	for _, f := range files {
		url, err := s.store.Upload(ctx, f.Name, f.Data, f.ContentType)
		if err != nil {
			s.logger.Error().Err(err).Str("file", f.Name).Msg("image upload failed")
			results = append(results, Result{Name: f.Name, Err: "image upload failed"})
			continue
		}
		images = append(images, url)
		results = append(results, Result{Name: f.Name, URL: url})
	}

	return images, results, nil
}

// RemoveImage drops one accumulated URL from the list. The remote object is
// left in place.
func RemoveImage(images []string, url string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img != url {
			out = append(out, img)
		}
	}
	return out
}
