// Package blobstore defines the raw-file storage contract used by the
// ingestion pipeline, with two implementations:
//
//   - blobstore/minio: S3-compatible object storage (production)
//   - blobstore/badger: an embedded local store for single-machine setups
//     and tests
//
// Uploaded files are retained even when vector indexing of their contents
// fails, so operators can retry indexing without re-uploading.
package blobstore
