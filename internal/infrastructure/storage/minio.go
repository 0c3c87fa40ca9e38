package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"framecanvas-backend/internal/config"
)

// MinIOStorage issues presigned URLs and manages objects in the template
// file and media buckets.
type MinIOStorage struct {
	client       *minio.Client
	filesBucket  string
	mediaBucket  string
	uploadExpiry time.Duration
}

// ObjectInfo is the subset of object metadata the reconciliation sweep needs.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinIOStorage{
		client:       client,
		filesBucket:  cfg.FilesBucket,
		mediaBucket:  cfg.MediaBucket,
		uploadExpiry: cfg.UploadExpiry,
	}

	ctx := context.Background()
	for _, bucket := range []string{cfg.FilesBucket, cfg.MediaBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}

	return s, nil
}

func (s *MinIOStorage) FilesBucket() string { return s.filesBucket }
func (s *MinIOStorage) MediaBucket() string { return s.mediaBucket }

// PresignedUpload returns a time-limited PUT URL for key. The caller
// transfers the raw bytes directly, the backend never sees them.
func (s *MinIOStorage) PresignedUpload(ctx context.Context, bucket, key string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, bucket, key, s.uploadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign upload for %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// PresignedDownload returns a time-limited GET URL for key.
func (s *MinIOStorage) PresignedDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download for %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// Upload writes data to the bucket. Used by the worker for thumbnail
// variants; client uploads go through presigned URLs instead.
func (s *MinIOStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(
		ctx,
		bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Download reads an object fully into memory.
func (s *MinIOStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Remove deletes a single object.
func (s *MinIOStorage) Remove(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// ListByPrefix lists all objects under prefix.
func (s *MinIOStorage) ListByPrefix(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	objectsCh := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var objects []ObjectInfo
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing %s/%s: %w", bucket, prefix, object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return objects, nil
}
