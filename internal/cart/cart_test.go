package cart

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	orig := newLineID
	newLineID = func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
	t.Cleanup(func() { newLineID = orig })
}

var (
	jacket = ProductSnapshot{ProductID: "p1", Name: "Leather Jacket", Price: decimal.RequireFromString("149.99")}
	jeans  = ProductSnapshot{ProductID: "p2", Name: "High-Waisted Jeans", Price: decimal.RequireFromString("89.99")}
)

func TestAddMergesSameProductAndSize(t *testing.T) {
	sequentialIDs(t)

	c, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jacket, "M", 2)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, "line-1", c.Lines[0].ID)
}

func TestAddSeparatesSizes(t *testing.T) {
	sequentialIDs(t)

	c, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jacket, "L", 1)
	require.NoError(t, err)
	c, err = c.Add(jeans, "M", 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 3)
	assert.Equal(t, []string{"line-1", "line-2", "line-3"}, []string{c.Lines[0].ID, c.Lines[1].ID, c.Lines[2].ID})
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		product ProductSnapshot
		size    string
		qty     int
		wantErr error
	}{
		{"zero quantity", jacket, "M", 0, ErrInvalidQuantity},
		{"negative quantity", jacket, "M", -2, ErrInvalidQuantity},
		{"above line maximum", jacket, "M", MaxLineQuantity + 1, ErrInvalidQuantity},
		{"max int", jacket, "M", math.MaxInt, ErrInvalidQuantity},
		{"blank size", jacket, "  ", 1, ErrSizeRequired},
		{"no product", ProductSnapshot{}, "M", 1, ErrProductRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Cart{}.Add(tt.product, tt.size, tt.qty)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, c.IsEmpty())
		})
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	before, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)

	after, err := before.Add(jacket, "M", 4)
	require.NoError(t, err)

	assert.Equal(t, 1, before.Lines[0].Quantity)
	assert.Equal(t, 5, after.Lines[0].Quantity)

	_, err = before.UpdateQuantity(before.Lines[0].ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, before.Lines[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	sequentialIDs(t)
	c, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jeans, "28", 1)
	require.NoError(t, err)

	c, err = c.UpdateQuantity("line-1", 4)
	require.NoError(t, err)
	l, ok := c.Line("line-1")
	require.True(t, ok)
	assert.Equal(t, 4, l.Quantity)

	c, err = c.UpdateQuantity("unknown", 7)
	require.NoError(t, err)
	assert.Equal(t, 5, c.ItemCount())

	c, err = c.UpdateQuantity("line-1", 0)
	require.NoError(t, err)
	_, ok = c.Line("line-1")
	assert.False(t, ok)

	c, err = c.UpdateQuantity("line-2", -1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityAboveMaximum(t *testing.T) {
	sequentialIDs(t)
	c, err := Cart{}.Add(jacket, "M", 2)
	require.NoError(t, err)

	for _, q := range []int{MaxLineQuantity + 1, math.MaxInt} {
		next, err := c.UpdateQuantity("line-1", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, next.Lines[0].Quantity)
	}

	c, err = c.UpdateQuantity("line-1", MaxLineQuantity)
	require.NoError(t, err)
	assert.Equal(t, MaxLineQuantity, c.Lines[0].Quantity)
}

func TestAddMergeCannotExceedMaximum(t *testing.T) {
	c, err := Cart{}.Add(jacket, "M", MaxLineQuantity)
	require.NoError(t, err)

	next, err := c.Add(jacket, "M", 1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, MaxLineQuantity, next.Lines[0].Quantity)

	c, err = Cart{}.Add(jacket, "M", 60)
	require.NoError(t, err)
	_, err = c.Add(jacket, "M", 40)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// a merge that would wrap around int is rejected, not stored negative
	c = Cart{Lines: []Line{{ID: "l", Product: jacket, Size: "M", Quantity: math.MaxInt}}}
	next, err = c.Add(jacket, "M", 1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, math.MaxInt, next.Lines[0].Quantity)
}

func TestNoLineBelowOne(t *testing.T) {
	sequentialIDs(t)
	c, err := Cart{}.Add(jacket, "M", 2)
	require.NoError(t, err)

	for _, q := range []int{3, 0, -4} {
		c, err = c.UpdateQuantity("line-1", q)
		require.NoError(t, err)
		for _, l := range c.Lines {
			if l.Quantity < 1 {
				t.Fatalf("line %s has quantity %d", l.ID, l.Quantity)
			}
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	sequentialIDs(t)
	c, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jeans, "28", 1)
	require.NoError(t, err)

	c = c.Remove("missing")
	assert.Len(t, c.Lines, 2)

	c = c.Remove("line-1")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].Product.ProductID)

	c = c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.ItemCount())
	assert.True(t, c.Subtotal().IsZero())
}

func TestSubtotal(t *testing.T) {
	c, err := Cart{}.Add(jacket, "M", 2)
	require.NoError(t, err)
	c, err = c.Add(jeans, "28", 1)
	require.NoError(t, err)

	assert.Equal(t, "389.97", c.Subtotal().StringFixed(2))
	assert.Equal(t, 3, c.ItemCount())
}

func TestWithoutKeepsLinesChangedAfterSnapshot(t *testing.T) {
	sequentialIDs(t)
	c, err := Cart{}.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jeans, "28", 2)
	require.NoError(t, err)
	ordered := c.Lines

	// after the snapshot: one more jacket, and a new line
	c, err = c.Add(jacket, "M", 1)
	require.NoError(t, err)
	c, err = c.Add(jacket, "L", 1)
	require.NoError(t, err)

	left := c.Without(ordered)
	require.Len(t, left.Lines, 2)
	assert.Equal(t, "line-1", left.Lines[0].ID)
	assert.Equal(t, 1, left.Lines[0].Quantity)
	assert.Equal(t, "line-3", left.Lines[1].ID)

	assert.True(t, Cart{}.Without(ordered).IsEmpty())
	assert.Len(t, c.Lines, 3)
}
