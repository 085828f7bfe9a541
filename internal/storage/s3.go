package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImageStore uploads product images to an S3-compatible object store and
// returns their public URLs.
type ImageStore struct {
	logger    zerolog.Logger
	client    *s3.Client
	bucket    string
	publicURL string
}

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func NewImageStore(logger zerolog.Logger, cfg Config) *ImageStore {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &ImageStore{
		logger:    logger.With().Str("component", "image-store").Logger(),
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}
}

// Upload stores the file under a fresh object key and returns its public URL.
// The original filename only contributes its extension.
func (s *ImageStore) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	key := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	url := s.publicURL + "/" + key
	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("uploaded image")
	return url, nil
}
