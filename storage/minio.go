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
)

// MinIO is an object store backed by a MinIO (or any S3-compatible) server.
type MinIO struct {
	client *minio.Client
}

// NewMinIO connects to endpoint ("host:port") with static credentials.
func NewMinIO(endpoint, accessKey, secretKey string, useSSL bool) (*MinIO, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client %s: %w", endpoint, err)
	}
	return &MinIO{client: client}, nil
}

// Get downloads the object under bucket/key.
func (m *MinIO) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", Location(bucket, key), notFound(err))
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Location(bucket, key), notFound(err))
	}
	return data, nil
}

// Put uploads data as a workbook under bucket/key and returns its location.
func (m *MinIO) Put(ctx context.Context, bucket, key string, data []byte) (string, error) {
	_, err := m.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: XLSXContentType})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", Location(bucket, key), err)
	}
	return Location(bucket, key), nil
}

// PresignGet returns a download URL for bucket/key valid for ttl.
func (m *MinIO) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", Location(bucket, key), err)
	}
	return u.String(), nil
}

// notFound maps MinIO's missing-key responses onto ErrNotFound.
func notFound(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
