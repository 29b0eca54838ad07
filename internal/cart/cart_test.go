package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAdd_SameVariantIncrementsQuantity(t *testing.T) {
	c := New("c1")
	key := Key{ProductID: "p1", Size: "M", Color: "Black"}

	added, err := c.Add(key, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = c.Add(key, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Quantity(key))
}

func TestAdd_DifferentVariantsAreSeparateLines(t *testing.T) {
	c := New("c1")

	_, err := c.Add(Key{ProductID: "p1", Size: "M"}, 1, nil)
	require.NoError(t, err)
	_, err = c.Add(Key{ProductID: "p1", Size: "L"}, 1, nil)
	require.NoError(t, err)
	_, err = c.Add(Key{ProductID: "p1", Size: "M", Color: "Red"}, 1, nil)
	require.NoError(t, err)
	_, err = c.Add(Key{ProductID: "p1"}, 1, nil)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 4)
	assert.Equal(t, 4, c.TotalItems())
}

func TestAdd_RespectsStock(t *testing.T) {
	c := New("c1")
	key := Key{ProductID: "p1"}

	added, err := c.Add(key, 5, intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, 3, c.Quantity(key))

	_, err = c.Add(key, 1, intPtr(3))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, c.Quantity(key))
}

func TestAdd_ZeroStock(t *testing.T) {
	c := New("c1")
	_, err := c.Add(Key{ProductID: "p1"}, 1, intPtr(0))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, c.Empty())
}

func TestAdd_InvalidQuantity(t *testing.T) {
	c := New("c1")
	_, err := c.Add(Key{ProductID: "p1"}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateQuantity(t *testing.T) {
	key := Key{ProductID: "p1", Size: "S"}

	tests := []struct {
		name    string
		qty     int
		stock   *int
		want    int
		removed bool
	}{
		{name: "set within stock", qty: 4, stock: intPtr(10), want: 4},
		{name: "clamped to stock", qty: 12, stock: intPtr(5), want: 5},
		{name: "untracked stock", qty: 40, stock: nil, want: 40},
		{name: "zero removes", qty: 0, removed: true},
		{name: "negative removes", qty: -3, removed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("c1")
			_, err := c.Add(key, 2, nil)
			require.NoError(t, err)

			require.NoError(t, c.UpdateQuantity(key, tt.qty, tt.stock))
			if tt.removed {
				assert.True(t, c.Empty())
				return
			}
			assert.Equal(t, tt.want, c.Quantity(key))
		})
	}
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	c := New("c1")
	err := c.UpdateQuantity(Key{ProductID: "nope"}, 1, nil)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	c := New("c1")
	a := Key{ProductID: "a"}
	b := Key{ProductID: "b", Color: "Blue"}
	_, _ = c.Add(a, 1, nil)
	_, _ = c.Add(b, 2, nil)

	c.Remove(a)
	assert.Equal(t, 0, c.Quantity(a))
	assert.Equal(t, 2, c.Quantity(b))

	c.Remove(Key{ProductID: "missing"})
	assert.Len(t, c.Lines, 1)

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalItems())
}
