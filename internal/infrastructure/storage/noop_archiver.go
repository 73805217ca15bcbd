package storage

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	infraconfig "github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// NoopArchiver discards snapshots. It is used when archiving is disabled.
type NoopArchiver struct{}

// Archive does nothing
func (NoopArchiver) Archive(ctx context.Context, snapshot integration.Snapshot) error {
	return nil
}

var _ integration.SnapshotArchiver = NoopArchiver{}

// NewSnapshotArchiver returns an S3 archiver when snapshots are enabled and a
// NoopArchiver otherwise
func NewSnapshotArchiver(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...S3SnapshotArchiverOption) (integration.SnapshotArchiver, error) {
	if cfg == nil || !cfg.SnapshotsEnabled {
		return NoopArchiver{}, nil
	}
	archiver, err := NewS3SnapshotArchiver(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := archiver.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archiver, nil
}
