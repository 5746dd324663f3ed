package export

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader pushes a results directory to an S3-compatible bucket so
// runs from CI can be collected in one place.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

// UploadConfig holds the connection settings for an S3-compatible
// endpoint.
type UploadConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// NewUploader creates an Uploader for the configured endpoint.
func NewUploader(cfg UploadConfig) (*Uploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("export: upload requires endpoint and bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("export: create client: %w", err)
	}

	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// UploadDir uploads every regular file under dir, keyed by its path
// relative to dir joined under the configured prefix.
func (u *Uploader) UploadDir(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(u.prefix, filepath.ToSlash(rel))

		if _, err := u.client.FPutObject(ctx, u.bucket, key, p, minio.PutObjectOptions{}); err != nil {
			return fmt.Errorf("export: upload %s: %w", rel, err)
		}
		return nil
	})
}
