// Package storage archives raw gateway payloads in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	infraconfig "github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// snapshotTimeLayout sorts lexically in time order
const snapshotTimeLayout = "20060102T150405.000000000Z"

// Ensure S3SnapshotArchiver implements SnapshotArchiver
var _ integration.SnapshotArchiver = (*S3SnapshotArchiver)(nil)

// S3SnapshotArchiver implements integration.SnapshotArchiver using AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, LocalStack, etc.)
type S3SnapshotArchiver struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

// S3SnapshotArchiverOption is a functional option for configuring S3SnapshotArchiver
type S3SnapshotArchiverOption func(*S3SnapshotArchiver)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3SnapshotArchiverOption {
	return func(s *S3SnapshotArchiver) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source used in object keys
func WithClock(now func() time.Time) S3SnapshotArchiverOption {
	return func(s *S3SnapshotArchiver) {
		s.now = now
	}
}

// NewS3SnapshotArchiver creates an archiver from configuration. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewS3SnapshotArchiver(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...S3SnapshotArchiverOption) (*S3SnapshotArchiver, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	archiver := &S3SnapshotArchiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(archiver)
	}
	return archiver, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3SnapshotArchiver) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating snapshot bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// race with another instance
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Key returns the object key of a snapshot taken at t:
// {prefix}/{store}/{integration}/{kind}/{timestamp}.json
func (s *S3SnapshotArchiver) Key(snapshot integration.Snapshot, t time.Time) string {
	return path.Join(
		s.prefix,
		snapshot.StoreID.String(),
		snapshot.IntegrationID.String(),
		string(snapshot.Kind),
		t.UTC().Format(snapshotTimeLayout)+".json",
	)
}

// Archive uploads the raw body of a gateway response
func (s *S3SnapshotArchiver) Archive(ctx context.Context, snapshot integration.Snapshot) error {
	if snapshot.Kind == "" {
		return errors.New("snapshot kind is required")
	}

	key := s.Key(snapshot, s.now())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snapshot.Body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"provider": snapshot.Provider.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	s.logger.Debug("Snapshot archived", zap.String("key", key), zap.Int("bytes", len(snapshot.Body)))
	return nil
}

// GetBucket returns the bucket name
func (s *S3SnapshotArchiver) GetBucket() string {
	return s.bucket
}
