package oss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	dftRegion = "us-east-1"
)

var (
	ErrNotFound     = errors.New("object not found")
	ErrEmptyBucket  = errors.New("empty bucket name")
	ErrEmptyObjName = errors.New("empty object name")
)

type Config struct {
	Endpoint  string // host:port, without scheme
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
	Region    string
}

type Option func(*minio.Options)

// WithTransport sets a custom round tripper, e.g. one trusting a test certificate.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *minio.Options) { o.Transport = rt }
}

// Store is a key based wrapper over one bucket.
type Store struct {
	mc     *minio.Client
	bucket string
}

func New(cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrEmptyBucket
	}
	if cfg.Region == "" {
		cfg.Region = dftRegion
	}
	mo := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	}
	for _, opt := range opts {
		opt(mo)
	}
	mc, err := minio.New(cfg.Endpoint, mo)
	if err != nil {
		return nil, fmt.Errorf("new minio client: %w", err)
	}
	return &Store{mc: mc, bucket: cfg.Bucket}, nil
}

func (s *Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}
	logger().Infow("bucket created", "bucket", s.bucket)
	return nil
}

// Put uploads a local file as objectName.
func (s *Store) Put(ctx context.Context, objectName, sourceFile string) error {
	if objectName == "" {
		return ErrEmptyObjName
	}
	info, err := s.mc.FPutObject(ctx, s.bucket, objectName, sourceFile, minio.PutObjectOptions{})
	if err != nil {
		logger().Infow("put object fail", "name", objectName, "file", sourceFile, "err", err)
		return fmt.Errorf("put object %s: %w", objectName, err)
	}
	logger().Debugw("put object ok", "name", objectName, "size", info.Size, "etag", info.ETag)
	return nil
}

// PutReader uploads from r, size may be -1 when unknown.
func (s *Store) PutReader(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	if objectName == "" {
		return ErrEmptyObjName
	}
	_, err := s.mc.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger().Infow("put object fail", "name", objectName, "err", err)
		return fmt.Errorf("put object %s: %w", objectName, err)
	}
	return nil
}

// Get downloads the whole object.
func (s *Store) Get(ctx context.Context, objectName string) ([]byte, error) {
	if objectName == "" {
		return nil, ErrEmptyObjName
	}
	obj, err := s.mc.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapErr(objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapErr(objectName, err)
	}
	return data, nil
}

func (s *Store) wrapErr(objectName string, err error) error {
	er := minio.ToErrorResponse(err)
	if er.Code == "NoSuchKey" || er.StatusCode == http.StatusNotFound {
		return fmt.Errorf("failed to download the object %s: %w", objectName, ErrNotFound)
	}
	logger().Infow("get object fail", "name", objectName, "err", err)
	return fmt.Errorf("failed to download the object %s: %w", objectName, err)
}
