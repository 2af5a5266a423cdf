package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for row documents.
// It is generated using content-based hashing so that identical content
// always maps to the same document.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys attached to every row document. Values are always strings;
// absent source fields are stored as "" so equality filters never fail on
// a type mismatch.
const (
	MetaSupplierID   = "supplier_id"
	MetaSupplierName = "supplier_name"
	MetaItemCategory = "item_category"
	MetaRiskLevel    = "risk_level"
	MetaSource       = "source"
	MetaRowIndex     = "row_index"
)

// RowDocument is the per-record text+metadata unit submitted for embedding.
// The Text field is what gets embedded and matched; Metadata exists for
// filtering and deletion, not retrieval quality.
//
// Documents are created once per source row at ingestion time and are
// immutable thereafter. They are removed only by deleting every document
// whose MetaSource equals a given file name.
type RowDocument struct {
	Id       ID
	Text     string
	Metadata map[string]string
}

// ScoredChunk is a single retrieval hit: the stored document text, its
// metadata, and the similarity score assigned by the vector store backend.
// Higher scores are more relevant.
type ScoredChunk struct {
	Text     string
	Metadata map[string]string
	Score    float32
}
