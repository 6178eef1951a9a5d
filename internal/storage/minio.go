package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"resumeapi/internal/config"
)

// objectPrefix groups resume objects inside the bucket.
const objectPrefix = "resumes"

// minioStorage implements Storage on an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ms.Ensure(ctx); err != nil {
		return nil, err
	}
	return ms, nil
}

// Ensure makes sure the bucket exists.
func (m *minioStorage) Ensure(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Put streams the object to the bucket; nothing touches local disk.
// S3 uploads are atomic: an interrupted upload never becomes visible at the key.
func (m *minioStorage) Put(ctx context.Context, originalFilename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	key := path.Join(objectPrefix, uuid.NewString()+filepath.Ext(originalFilename))
	meta := map[string]string{"original-filename": filepath.Base(originalFilename)}
	for k, v := range opt.Metadata {
		meta[k] = v
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: meta,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	if opt.Size >= 0 && info.Size != opt.Size {
		_ = m.Delete(ctx, key)
		return ObjectInfo{}, fmt.Errorf("upload %s: stored %d of %d bytes", key, info.Size, opt.Size)
	}
	return ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: opt.ContentType,
	}, nil
}

// Delete removes an object by key.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
