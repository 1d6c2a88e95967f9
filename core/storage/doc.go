// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to archive printed label artifacts (the exact
// PNG that was rasterized for a job) so operators can audit what went to the
// printer. The abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the archive bucket.
//   - MakeBucket: Creates the bucket at startup (see EnsureBucket).
//   - PutObject: Uploads an artifact (with size and options).
//   - GetObject: Retrieves an artifact as a stream.
//   - ListObjects: Lists archived artifacts for the history sweep.
//   - RemoveObject: Deletes artifacts that fell out of the job history.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "labels")
package storage
