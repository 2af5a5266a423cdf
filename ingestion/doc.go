// Package ingestion turns uploaded procurement CSV files into indexed,
// retrievable row documents.
//
// Each data row is rendered into a fixed-shape text block and carries
// structured metadata for filtering. The Pipeline persists the raw upload,
// parses it, builds the documents, and hands them to the vector index,
// reporting fractional progress along the way.
package ingestion
