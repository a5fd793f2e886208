package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRef(t *testing.T) {
	t.Run("should create a reference from typed sequences", func(t *testing.T) {
		ref, err := kernel.NewItemRef(2, 5)

		require.NoError(t, err)
		require.NoError(t, ref.Validate())
		assert.Equal(t, 2, ref.PartySeq())
		assert.Equal(t, 5, ref.ItemSeq())
		assert.Equal(t, "REF-2-5", ref.String())
	})

	t.Run("should reject negative sequences", func(t *testing.T) {
		_, err := kernel.NewItemRef(-1, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "partySeq")

		_, err = kernel.NewItemRef(0, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "itemSeq")
	})
}

func TestParseItemRef(t *testing.T) {
	t.Run("should parse the legacy encoded form", func(t *testing.T) {
		ref, err := kernel.ParseItemRef("REF-1-3")

		require.NoError(t, err)
		assert.Equal(t, 1, ref.PartySeq())
		assert.Equal(t, 3, ref.ItemSeq())
		assert.Empty(t, ref.Suffix())
	})

	t.Run("should keep a trailing suffix, dashes included", func(t *testing.T) {
		ref, err := kernel.ParseItemRef("REF-0-2-steel-coil")

		require.NoError(t, err)
		assert.Equal(t, 0, ref.PartySeq())
		assert.Equal(t, 2, ref.ItemSeq())
		assert.Equal(t, "steel-coil", ref.Suffix())
		assert.Equal(t, "REF-0-2-steel-coil", ref.String())
	})

	t.Run("should reject malformed references", func(t *testing.T) {
		testCases := []struct {
			name  string
			input string
		}{
			{"empty", ""},
			{"wrong prefix", "ITEM-1-2"},
			{"missing item segment", "REF-1"},
			{"party not a number", "REF-a-2"},
			{"item not a number", "REF-1-b"},
			{"negative party", "REF--1-2"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.ParseItemRef(tc.input)
				require.Error(t, err)
			})
		}
	})
}

func TestItemRefIsEqual(t *testing.T) {
	a, err := kernel.NewItemRef(1, 2)
	require.NoError(t, err)
	b, err := kernel.ParseItemRef("REF-1-2")
	require.NoError(t, err)
	c, err := kernel.NewItemRef(1, 3)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestItemRefValidate(t *testing.T) {
	var zero kernel.ItemRef

	require.Error(t, zero.Validate())
}
