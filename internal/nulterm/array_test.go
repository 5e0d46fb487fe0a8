package nulterm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests that [New] terminates any finite input and preserves order.
func TestNew(t *testing.T) {
	t.Parallel()

	inputs := [][]int{
		nil,
		{},
		{0},
		{1, 2, 3},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	}

	for _, in := range inputs {
		arr := New(in)

		require.Equal(t, len(in), arr.Len())
		require.Equal(t, len(in)+1, arr.Words())
		assert.Zero(t, words(arr.Slice)[arr.Len()], "last slot must be the sentinel")
		assert.Equal(t, append([]int{}, in...), arr.Values())
		assert.Equal(t, arr.Values(), arr.Values(), "values must be stable")
	}
}

// TestNew_NoArguments tests the degenerate case of an empty array, which
// must still carry its sentinel.
func TestNew_NoArguments(t *testing.T) {
	t.Parallel()

	arr := New([]string{})

	assert.Empty(t, arr.Values())
	assert.Empty(t, slices.Collect(arr.Elems()))
	require.NotNil(t, arr.Pointer())
	assert.Equal(t, []uintptr{0}, words(arr.Slice))
}

// TestNew_CopiesInput tests that [New] does not alias the caller's slice.
func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []int{1, 2}
	arr := New(in)
	in[0] = 100

	assert.Equal(t, []int{1, 2}, arr.Values())
}

// TestCollect tests construction from an iterator.
func TestCollect(t *testing.T) {
	t.Parallel()

	arr := Collect(slices.Values([]string{"x", "y"}))

	assert.Equal(t, []string{"x", "y"}, arr.Values())
	assert.Equal(t, 3, arr.Words())
}

// TestFromRefs tests construction from existing element pointers.
func TestFromRefs(t *testing.T) {
	t.Parallel()

	t.Run("Success_Aliases", func(t *testing.T) {
		x, y := ptr(1), ptr(2)

		arr, err := FromRefs([]*int{x, y})
		require.NoError(t, err)

		*x = 10
		assert.Equal(t, []int{10, 2}, arr.Values())
		assert.Same(t, y, arr.At(1))
	})

	t.Run("Success_Empty", func(t *testing.T) {
		arr, err := FromRefs[int](nil)
		require.NoError(t, err)
		assert.Equal(t, 1, arr.Words())
	})

	t.Run("Fail_NilRef", func(t *testing.T) {
		arr, err := FromRefs([]*int{ptr(1), nil})
		require.ErrorIs(t, err, ErrNilElement)
		assert.Nil(t, arr)
	})
}

// TestAdopt tests the adoption of existing slot buffers.
func TestAdopt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		slots    []*int
		expected []int
		words    int
		err      error
	}{
		{
			name:     "Success_Nil",
			slots:    nil,
			expected: []int{},
			words:    1,
		},
		{
			name:     "Success_OnlySentinel",
			slots:    []*int{nil},
			expected: []int{},
			words:    1,
		},
		{
			name:     "Success_AppendsSentinel",
			slots:    []*int{ptr(1), ptr(2)},
			expected: []int{1, 2},
			words:    3,
		},
		{
			name:     "Success_KeepsSentinel",
			slots:    []*int{ptr(1), ptr(2), nil},
			expected: []int{1, 2},
			words:    3,
		},
		{
			name:  "Fail_InteriorEmpty",
			slots: []*int{ptr(1), nil, ptr(2)},
			err:   ErrInteriorEmpty,
		},
		{
			name:  "Fail_InteriorEmptyTerminated",
			slots: []*int{ptr(1), nil, ptr(2), nil},
			err:   ErrInteriorEmpty,
		},
		{
			name:  "Fail_DoubleSentinel",
			slots: []*int{ptr(1), nil, nil},
			err:   ErrInteriorEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arr, err := Adopt(tt.slots)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, arr, "no partial buffer on rejection")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, arr.Values())
			assert.Equal(t, tt.words, arr.Words())
			assert.Zero(t, words(arr.Slice)[tt.words-1])

			_, ok := FromSlice(words2slots(arr))
			assert.True(t, ok, "adopted buffer must pass the checked view")
		})
	}
}

// TestAdopt_DetachedFromInput tests that writes to the adopted slice after
// construction cannot reach the buffer.
func TestAdopt_DetachedFromInput(t *testing.T) {
	t.Parallel()

	t.Run("Success_AppendIntoSpareCapacity", func(t *testing.T) {
		slots := make([]*int, 1, 4)
		slots[0] = ptr(1)

		arr, err := Adopt(slots)
		require.NoError(t, err)

		_ = append(slots, ptr(2))

		assert.Zero(t, words(arr.Slice)[arr.Len()])
		assert.Equal(t, []int{1}, arr.Values())
	})

	t.Run("Success_OverwriteSentinel", func(t *testing.T) {
		slots := []*int{ptr(1), nil}

		arr, err := Adopt(slots)
		require.NoError(t, err)

		slots[0] = nil
		slots[1] = ptr(2)

		assert.Zero(t, words(arr.Slice)[arr.Len()])
		assert.Equal(t, []int{1}, arr.Values())
	})
}

// words2slots rebuilds the physical slots of an [Array] from its view.
func words2slots[T any](arr *Array[T]) []*T {
	return append(arr.Refs(), nil)
}

// TestArray_Viewer tests that both forms satisfy [Viewer] and agree.
func TestArray_Viewer(t *testing.T) {
	t.Parallel()

	arr := New([]int{4, 2})

	var owned Viewer[int] = arr
	var borrowed Viewer[int] = arr.View()

	assert.Equal(t, owned.View().Values(), borrowed.View().Values())
	assert.Equal(t, owned.View().Pointer(), borrowed.View().Pointer())
}
