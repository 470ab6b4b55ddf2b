package storage

import (
	"alcyxob/fitness-bot/internal/config"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type cachedURL struct {
	url      string
	expireAt time.Time
}

// s3Storage presigns banner downloads. Every banner is read on each menu
// render, so signed URLs are reused until half of their lifetime is gone.
type s3Storage struct {
	presign presigner
	bucket  string
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cachedURL
}

func newS3Storage(p presigner, bucket string) *s3Storage {
	return &s3Storage{
		presign: p,
		bucket:  bucket,
		now:     time.Now,
		cache:   map[string]cachedURL{},
	}
}

// NewS3Storage connects to an S3-compatible bucket. A custom endpoint
// (MinIO, Spaces) switches to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (MediaStorage, error) {
	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	sdkConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
		o.UsePathStyle = true
	})

	slog.Info("S3 media storage initialized", "endpoint", cfg.Endpoint, "bucket", cfg.BucketName)
	return newS3Storage(s3.NewPresignClient(client), cfg.BucketName), nil
}

// endpointURL adds a scheme to bare host:port endpoints.
func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func (s *s3Storage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	now := s.now()

	s.mu.Lock()
	if c, ok := s.cache[objectKey]; ok && now.Add(expires/2).Before(c.expireAt) {
		s.mu.Unlock()
		return c.url, nil
	}
	s.mu.Unlock()

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectKey, err)
	}

	s.mu.Lock()
	s.cache[objectKey] = cachedURL{url: req.URL, expireAt: now.Add(expires)}
	s.mu.Unlock()
	return req.URL, nil
}
