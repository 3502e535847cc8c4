package main

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aliskhannn/watermark-manager/internal/config"
	"github.com/aliskhannn/watermark-manager/internal/storage/file"
	"github.com/aliskhannn/watermark-manager/internal/storage/local"
)

type fileStorage interface {
	Load(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, src io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// newStorage returns the backend selected by cfg.Driver.
func newStorage(ctx context.Context, cfg config.Storage) (fileStorage, error) {
	if cfg.Driver == config.DriverMinIO {
		m := cfg.MinIO
		return file.NewStorage(ctx, m.Endpoint, m.AccessKey, m.SecretKey, m.BucketName, cfg.Dir, m.UseSSL)
	}

	return local.NewStorage(nil, cfg.Dir), nil
}

// describeLocation tells the user where to put input images.
func describeLocation(cfg config.Storage) string {
	if cfg.Driver == config.DriverMinIO {
		prefix := path.Clean(cfg.Dir)
		if prefix == "." || prefix == "/" {
			return fmt.Sprintf("the root of bucket `%s`", cfg.MinIO.BucketName)
		}
		return fmt.Sprintf("the `%s/` prefix of bucket `%s`", prefix, cfg.MinIO.BucketName)
	}

	return fmt.Sprintf("`%s` folder", cfg.Dir)
}
