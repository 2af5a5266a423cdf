// Copyright 2026 Procurelens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/procurelens/procurelens/blobstore"
	"github.com/procurelens/procurelens/core"
	"github.com/procurelens/procurelens/vectorstore"
)

// Progress checkpoints reported during Process. Fractions are monotonically
// non-decreasing within a single run.
const (
	progressUploaded = 0.1
	progressParsed   = 0.2
	progressBuilt    = 0.7 // width of the document-building phase
	progressIndexing = 0.8
	progressDone     = 1.0
)

// ProgressFunc receives ingestion progress as a fraction in [0, 1] along
// with a short human-readable stage description. Implementations must be
// fast; they are invoked synchronously on the pipeline goroutine.
type ProgressFunc func(fraction float64, stage string)

// Result describes the outcome of one ingestion run. Message is always
// populated, including on failure, so callers can surface it directly.
type Result struct {
	// Records is the number of row documents indexed.
	Records int

	// Message is a display-ready status line.
	Message string
}

// Pipeline ingests uploaded CSV files: it persists the raw bytes, parses
// the rows, builds row documents, and indexes them for retrieval.
type Pipeline struct {
	files           blobstore.FileStore
	index           *vectorstore.Index
	logger          *slog.Logger
	progress        ProgressFunc
	replaceExisting bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithProgress sets a callback for ingestion progress reporting.
func WithProgress(fn ProgressFunc) PipelineOption {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithPipelineLogger sets the logger used by the pipeline.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithReplaceExisting makes Process delete previously indexed documents
// from the same source file before indexing the new batch. Without it,
// re-ingestion upserts by content identity and stale rows linger.
func WithReplaceExisting() PipelineOption {
	return func(p *Pipeline) {
		p.replaceExisting = true
	}
}

// NewPipeline creates an ingestion pipeline over the given file store and
// index.
func NewPipeline(files blobstore.FileStore, index *vectorstore.Index, opts ...PipelineOption) (*Pipeline, error) {
	if files == nil {
		return nil, ErrFileStoreRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	p := &Pipeline{
		files:  files,
		index:  index,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Process runs the full ingestion flow for one uploaded file. The returned
// Result carries a displayable message on both success and failure; the
// error, when non-nil, wraps the underlying cause.
func (p *Pipeline) Process(ctx context.Context, content []byte, fileName string) (*Result, error) {
	start := time.Now()

	if err := p.files.Upload(ctx, fileName, content); err != nil {
		p.logger.ErrorContext(ctx, "file upload failed", "file", fileName, "error", err)
		return &Result{Message: fmt.Sprintf("Error uploading file: %v", err)},
			fmt.Errorf("uploading %q: %w", fileName, err)
	}
	p.report(progressUploaded, "File uploaded.")

	rows, err := parseCSV(content)
	if err != nil {
		p.logger.ErrorContext(ctx, "csv parse failed", "file", fileName, "error", err)
		return &Result{Message: "Invalid CSV format"}, err
	}
	p.report(progressParsed, "File parsed.")

	docs := make([]core.RowDocument, 0, len(rows))
	for i, row := range rows {
		docs = append(docs, BuildRowDocument(row, fileName, i))
		if i%10 == 0 {
			fraction := progressParsed + (progressBuilt-progressParsed)*float64(i)/float64(len(rows))
			p.report(fraction, fmt.Sprintf("Preparing documents (%d/%d)...", i, len(rows)))
		}
	}
	p.report(progressIndexing, "Indexing documents...")

	if p.replaceExisting {
		deleted, err := p.index.DeleteBySource(ctx, fileName)
		if err != nil {
			p.logger.ErrorContext(ctx, "stale document cleanup failed", "file", fileName, "error", err)
			return &Result{Message: fmt.Sprintf("Error indexing documents: %v", err)},
				fmt.Errorf("removing stale documents for %q: %w", fileName, err)
		}
		if deleted > 0 {
			p.logger.DebugContext(ctx, "removed stale documents", "file", fileName, "count", deleted)
		}
	}

	if err := p.index.Add(ctx, docs); err != nil {
		p.logger.ErrorContext(ctx, "indexing failed", "file", fileName, "error", err)
		return &Result{Message: fmt.Sprintf("Error indexing documents: %v", err)},
			fmt.Errorf("indexing documents for %q: %w", fileName, err)
	}
	p.report(progressDone, "Done.")

	p.logger.InfoContext(ctx, "ingestion complete",
		"file", fileName,
		"records", len(docs),
		"duration", time.Since(start))

	return &Result{
		Records: len(docs),
		Message: fmt.Sprintf("Successfully processed %d records.", len(docs)),
	}, nil
}

func (p *Pipeline) report(fraction float64, stage string) {
	if p.progress != nil {
		p.progress(fraction, stage)
	}
}

// parseCSV decodes CSV content into one map per data row, keyed by the
// header row. Any malformed input yields ErrInvalidCSV.
func parseCSV(content []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
