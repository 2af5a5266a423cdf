package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/procurelens/procurelens/blobstore"
)

// Client is a blobstore.FileStore on an S3-compatible object store.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

var _ blobstore.FileStore = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient connects to the object store and ensures the configured bucket
// exists, creating it if absent. A connectivity failure surfaces here, at
// first use, and is fatal to the requested operation but not to the process.
func NewClient(ctx context.Context, config *Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	mc, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	c := &Client{
		client: mc,
		bucket: config.Bucket,
		logger: slog.Default().With("component", "minio-filestore"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", c.bucket, err)
	}
	if exists {
		return nil
	}

	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", c.bucket, err)
	}

	c.logger.Info("bucket created", "bucket", c.bucket)
	return nil
}

// Upload stores content under name, overwriting any existing object.
func (c *Client) Upload(ctx context.Context, name string, content []byte) error {
	if name == "" {
		return blobstore.ErrNameRequired
	}

	_, err := c.client.PutObject(ctx, c.bucket, name,
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("upload %q: %w", name, err)
	}

	c.logger.Debug("object stored", "name", name, "size", len(content))
	return nil
}

// List returns the names of all stored objects.
func (c *Client) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// Get returns the content of the named object.
func (c *Client) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, blobstore.ErrNameRequired
	}

	obj, err := c.client.GetObject(ctx, c.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return content, nil
}

// Delete removes the named object.
func (c *Client) Delete(ctx context.Context, name string) error {
	if name == "" {
		return blobstore.ErrNameRequired
	}

	// RemoveObject succeeds on missing keys; stat first so callers can
	// distinguish "deleted" from "was never there".
	if _, err := c.client.StatObject(ctx, c.bucket, name, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return blobstore.ErrNotFound
		}
		return fmt.Errorf("stat %q: %w", name, err)
	}

	if err := c.client.RemoveObject(ctx, c.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}

	c.logger.Debug("object deleted", "name", name)
	return nil
}

// Close is a no-op; the underlying client holds no persistent connection.
func (c *Client) Close() error {
	return nil
}
