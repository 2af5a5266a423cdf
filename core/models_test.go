package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("Supplier: Acme (ID: S001)")
		id2 := IDFromContent("Supplier: Acme (ID: S001)")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content produces different IDs", func(t *testing.T) {
		id1 := IDFromContent("Supplier: Acme (ID: S001)")
		id2 := IDFromContent("Supplier: Acme (ID: S002)")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content has an ID", func(t *testing.T) {
		id := IDFromContent("")
		assert.Equal(t, id, IDFromContent(""))
	})
}
