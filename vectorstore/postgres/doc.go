// Package postgres provides the production vectorstore.Store on PostgreSQL
// with the pgvector extension. Embeddings are stored alongside the document
// text and JSONB metadata; similarity search uses cosine distance, and
// delete-by-source filters on the metadata source key.
package postgres
