package diag

import (
	"fmt"
	"testing"

	"github.com/inoxlang/scriptc/internal/position"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	loc := position.Location{Line: 2, Column: 5, Offset: 14}

	t.Run("message", func(t *testing.T) {
		err := Resolution(loc, FmtConstructorNotFound("HashMap", 0))
		assert.Equal(t, "2:5: constructor [HashMap, <init>/0] not found", err.Error())
		assert.Equal(t, "constructor [HashMap, <init>/0] not found", err.MessageWithoutLocation())
		assert.Equal(t, loc, err.LocationRange())
	})

	t.Run("kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("compilation of main failed: %w", Usage(loc, MUST_READ_FROM_MAP_INIT))

		kind, ok := KindOf(err)
		if assert.True(t, ok) {
			assert.Equal(t, UsageError, kind)
		}
		assert.True(t, Is(err, UsageError))
		assert.False(t, IsInternal(err))

		_, ok = KindOf(assert.AnError)
		assert.False(t, ok)
	})

	t.Run("internal", func(t *testing.T) {
		assert.True(t, IsInternal(Structural(loc, ILLEGAL_TREE_STRUCTURE)))
		assert.Equal(t, "structural invariant error", StructuralInvariantError.String())
	})

	t.Run("suggestion", func(t *testing.T) {
		assert.Equal(t, "type [Hashmap] not found, did you mean [HashMap] ?", WithSuggestion(FmtTypeNotFound("Hashmap"), "HashMap"))
		assert.Equal(t, "type [X] not found", WithSuggestion(FmtTypeNotFound("X"), ""))
	})
}
