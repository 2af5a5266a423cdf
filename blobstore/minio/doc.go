// Package minio provides the production blobstore.FileStore on S3-compatible
// object storage. The bucket is created on first connect if absent.
package minio
