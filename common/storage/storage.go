package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/google/uuid"
)

var ErrIncompleteConfig = errors.New("storage configuration is incomplete")

// Storage persists imported media and returns where it can be fetched from.
type Storage interface {
	Name() string
	Put(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
}

// New picks the S3 backend when a bucket is configured and falls back to the local directory.
func New(ctx context.Context) (Storage, error) {
	if config.S3Bucket != "" {
		return NewS3Storage(ctx, S3Options{
			Bucket:    config.S3Bucket,
			Endpoint:  config.S3Endpoint,
			Region:    config.S3Region,
			AccessKey: config.S3AccessKey,
			SecretKey: config.S3SecretKey,
			PublicURL: config.S3PublicURL,
		})
	}
	return NewLocalStorage(config.UploadDir, config.UploadBaseURL)
}

// ObjectKey builds "<prefix>/<yyyy>/<mm>/<name>", adding a short suffix when unique is set.
func ObjectKey(prefix, name string, unique bool) string {
	now := time.Now()
	if unique {
		ext := path.Ext(name)
		base := name[:len(name)-len(ext)]
		name = fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)
	}
	return path.Join(prefix, now.Format("2006"), now.Format("01"), name)
}
