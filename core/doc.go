// Package core contains the domain model shared across the procurement
// analytics pipeline: row documents, retrieval hits, and the deterministic
// content-based IDs they are stored under.
package core
