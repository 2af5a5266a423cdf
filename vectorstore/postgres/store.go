package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/procurelens/procurelens/ai"
	"github.com/procurelens/procurelens/core"
	"github.com/procurelens/procurelens/vectorstore"
)

// Store is a vectorstore.Store backed by PostgreSQL with the pgvector
// extension. Documents live in a single table with their embedding and a
// JSONB metadata column; similarity search uses cosine distance.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool     *pgxpool.Pool
	embedder ai.Embedder
	table    string
	logger   *slog.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Open connects to PostgreSQL, ensures the pgvector extension and the
// document table exist, and returns a ready store. The first call carries
// the full connection and bootstrap cost; the Gateway makes sure it happens
// once per process.
func Open(ctx context.Context, config *Config, embedder ai.Embedder, opts ...Option) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolCfg, err := pgxpool.ParseConfig(config.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := &Store{
		pool:     pool,
		embedder: embedder,
		table:    config.Table,
		logger:   slog.Default().With("component", "postgres-store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.bootstrap(ctx, config.Dimensions); err != nil {
		pool.Close()
		return nil, err
	}

	s.logger.Info("vector store ready", "table", s.table, "dimensions", config.Dimensions)
	return s, nil
}

// bootstrap creates the extension, table, and the source-metadata index if
// they do not exist yet.
func (s *Store) bootstrap(ctx context.Context, dimensions int) error {
	table := pgx.Identifier{s.table}.Sanitize()

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			embedding  vector(%d) NOT NULL,
			metadata   JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table, dimensions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s ((metadata->>'source'))`,
			pgx.Identifier{s.table + "_source_idx"}.Sanitize(), table),
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// AddDocuments embeds the document texts in one batch and upserts them in a
// single transaction. Re-adding a document with the same ID overwrites the
// stored row instead of duplicating it.
func (s *Store) AddDocuments(ctx context.Context, docs []core.RowDocument) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return ErrEmbeddingCountMismatch
	}

	table := pgx.Identifier{s.table}.Sanitize()
	sql := fmt.Sprintf(`INSERT INTO %s (id, content, embedding, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`, table)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, doc := range docs {
		metadataJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for document %d: %w", i, err)
		}

		_, err = tx.Exec(ctx, sql,
			strconv.FormatUint(uint64(doc.Id), 10),
			doc.Text,
			pgvector.NewVector(vectors[i]),
			metadataJSON,
		)
		if err != nil {
			return fmt.Errorf("upsert document %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("documents stored", "count", len(docs))
	return nil
}

// Search embeds the query and returns the topK nearest documents by cosine
// similarity, highest score first.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]core.ScoredChunk, error) {
	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	table := pgx.Identifier{s.table}.Sanitize()
	sql := fmt.Sprintf(`SELECT content, metadata, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`, table)

	rows, err := s.pool.Query(ctx, sql, pgvector.NewVector(queryVec), topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var chunks []core.ScoredChunk
	for rows.Next() {
		var (
			content      string
			metadataJSON []byte
			score        float64
		)
		if err := rows.Scan(&content, &metadataJSON, &score); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}

		metadata := make(map[string]string)
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}

		chunks = append(chunks, core.ScoredChunk{
			Text:     content,
			Metadata: metadata,
			Score:    float32(score),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return chunks, nil
}

// DeleteBySource removes every document whose source metadata equals source.
func (s *Store) DeleteBySource(ctx context.Context, source string) (int64, error) {
	table := pgx.Identifier{s.table}.Sanitize()
	sql := fmt.Sprintf(`DELETE FROM %s WHERE metadata->>'source' = $1`, table)

	ct, err := s.pool.Exec(ctx, sql, source)
	if err != nil {
		return 0, fmt.Errorf("delete by source: %w", err)
	}

	removed := ct.RowsAffected()
	s.logger.Debug("documents deleted by source", "source", source, "removed", removed)
	return removed, nil
}

// Count reports the number of stored documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	table := pgx.Identifier{s.table}.Sanitize()

	var count int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
