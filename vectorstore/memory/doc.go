// Package memory provides an in-process vectorstore.Store backed by a map
// and a cosine-similarity scan. It exists for tests and for running the
// assistant without a PostgreSQL instance; nothing persists across restarts.
package memory
