// Package badger provides an embedded blobstore.FileStore on BadgerDB for
// single-machine deployments and tests. Keys are object names under a fixed
// prefix; values are the raw file bytes.
package badger
