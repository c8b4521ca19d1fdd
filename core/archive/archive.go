package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"gearsync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Snapshot kinds. One sync pass produces at most one snapshot per kind.
const (
	KindDownload = "download"
	KindUpload   = "upload"
)

// ErrNoSnapshots is returned by Latest when no snapshot of the requested
// kind exists yet.
var ErrNoSnapshots = errors.New("no snapshots archived")

// Archiver stores JSON snapshots of the payloads a sync pass exchanged, so
// operators can inspect exactly what was pulled from the hub and what was
// pushed back when a run is disputed.
type Archiver struct {
	client      storage.Client
	bucket      string
	prefix      string
	destination string
	retention   time.Duration
	logger      *zap.Logger
}

// New creates an archiver writing under <prefix>/<destination>/ in the
// given bucket.
func New(client storage.Client, bucket string, cfg Config, destination string, logger *zap.Logger) *Archiver {
	return &Archiver{
		client:      client,
		bucket:      bucket,
		prefix:      cfg.Prefix,
		destination: destination,
		retention:   time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		logger:      logger,
	}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	a.logger.Info("Created archive bucket", zap.String("bucket", a.bucket))
	return nil
}

// SaveSnapshot marshals the payload and stores it under a timestamped key.
// It returns the object name of the written snapshot.
func (a *Archiver) SaveSnapshot(ctx context.Context, kind string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s snapshot: %w", kind, err)
	}

	name := path.Join(a.prefix, a.destination, kind,
		time.Now().UTC().Format("20060102T150405.000Z")+".json")

	_, err = a.client.PutObject(ctx, a.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to store %s snapshot: %w", kind, err)
	}

	return name, nil
}

// Latest returns a reader over the most recent snapshot of the given kind,
// along with its object name. The caller must close the reader.
func (a *Archiver) Latest(ctx context.Context, kind string) (io.ReadCloser, string, error) {
	prefix := path.Join(a.prefix, a.destination, kind) + "/"

	var newest minio.ObjectInfo
	found := false
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, "", fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !found || obj.LastModified.After(newest.LastModified) {
			newest = obj
			found = true
		}
	}

	if !found {
		return nil, "", ErrNoSnapshots
	}

	rc, err := a.client.GetObject(ctx, a.bucket, newest.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read snapshot %s: %w", newest.Key, err)
	}

	return rc, newest.Key, nil
}

// PruneExpired removes snapshots older than the configured retention and
// returns how many were deleted. With retention disabled it is a no-op.
func (a *Archiver) PruneExpired(ctx context.Context) (int, error) {
	if a.retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-a.retention)

	prefix := path.Join(a.prefix, a.destination) + "/"
	var expired []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list snapshots for pruning: %w", obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			expired = append(expired, obj)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(expired))
	for _, obj := range expired {
		objectsCh <- obj
	}
	close(objectsCh)

	removed := len(expired)
	for rmErr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		removed--
		a.logger.Warn("Failed to remove expired snapshot",
			zap.String("object", rmErr.ObjectName),
			zap.Error(rmErr.Err),
		)
	}

	if removed > 0 {
		a.logger.Info("Pruned expired snapshots",
			zap.Int("removed", removed),
			zap.Time("cutoff", cutoff),
		)
	}

	return removed, nil
}
