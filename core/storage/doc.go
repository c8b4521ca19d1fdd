// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering the
// operations the payload archive performs: writing snapshot objects, listing
// and reading them back, and bulk-removing expired ones. The abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface exists so the archive and the status checks can be
// unit tested against the mock in core/storage/mocks instead of a live
// endpoint.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
