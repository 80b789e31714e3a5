package cart_test

import (
	"testing"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDish(t *testing.T, id, price string) menu.Dish {
	t.Helper()
	d, err := menu.NewDish(id, "Dish "+id, kernel.MustMoney(price))
	require.NoError(t, err)
	return d
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID())
	require.NoError(t, err)
	return c
}

var sauce = menu.NewCustomization([]menu.SelectedChoice{
	{GroupID: "c2", ChoiceID: "s3", Label: "Bearnaise", PriceDelta: kernel.MustMoney("2.00")},
})

func TestNewCart(t *testing.T) {
	t.Run("should create an empty cart", func(t *testing.T) {
		c := newCart(t)

		require.NoError(t, c.Validate())
		assert.True(t, c.IsEmpty())
		assert.Zero(t, c.Version())
	})

	t.Run("should reject zero UUID", func(t *testing.T) {
		c, err := cart.NewCart(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Nil(t, c)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c *cart.Cart

		require.ErrorIs(t, c.Validate(), cart.ErrCartIsNotConstructed)
	})
}

func TestCart_AddItem(t *testing.T) {
	salmon := newDish(t, "d4", "24.50")
	steak := newDish(t, "d3", "28.00")

	t.Run("should append a new line", func(t *testing.T) {
		c := newCart(t)

		line, err := c.AddItem(salmon, 2, menu.Customization{})

		require.NoError(t, err)
		assert.Equal(t, "d4", line.DishID())
		assert.Equal(t, 2, line.Quantity())
		assert.Equal(t, "49.00", line.LineTotal().String())
		assert.Len(t, c.Snapshot(), 1)
		assert.Equal(t, uint64(1), c.Version())
	})

	t.Run("should merge identical dish and customization", func(t *testing.T) {
		c := newCart(t)

		first, _ := c.AddItem(steak, 1, sauce)
		second, err := c.AddItem(steak, 2, sauce)

		require.NoError(t, err)
		assert.True(t, first.ID().IsEqual(second.ID()))
		assert.Equal(t, 3, second.Quantity())
		assert.Len(t, c.Snapshot(), 1)
		assert.Equal(t, "90.00", second.LineTotal().String())
	})

	t.Run("should keep different customizations apart", func(t *testing.T) {
		c := newCart(t)

		_, _ = c.AddItem(steak, 1, sauce)
		_, _ = c.AddItem(steak, 1, menu.Customization{})

		assert.Len(t, c.Snapshot(), 2)
	})

	t.Run("should clamp non-positive quantity to one", func(t *testing.T) {
		c := newCart(t)

		line, err := c.AddItem(salmon, 0, menu.Customization{})

		require.NoError(t, err)
		assert.Equal(t, 1, line.Quantity())
	})

	t.Run("should reject a zero-value dish", func(t *testing.T) {
		c := newCart(t)

		_, err := c.AddItem(menu.Dish{}, 1, menu.Customization{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, c.IsEmpty())
		assert.Zero(t, c.Version())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		expected int
	}{
		{"raises quantity", 5, 5},
		{"clamps zero to one", 0, 1},
		{"clamps negative to one", -3, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCart(t)
			line, _ := c.AddItem(newDish(t, "d1", "12.99"), 2, menu.Customization{})

			err := c.SetQuantity(line.ID(), tc.quantity)

			require.NoError(t, err)
			updated, ok := c.Item(line.ID())
			require.True(t, ok)
			assert.Equal(t, tc.expected, updated.Quantity())
		})
	}

	t.Run("should not bump version when quantity is unchanged", func(t *testing.T) {
		c := newCart(t)
		line, _ := c.AddItem(newDish(t, "d1", "12.99"), 2, menu.Customization{})
		before := c.Version()

		require.NoError(t, c.SetQuantity(line.ID(), 2))
		assert.Equal(t, before, c.Version())
	})

	t.Run("should report unknown line", func(t *testing.T) {
		c := newCart(t)

		err := c.SetQuantity(kernel.NewUUID(), 2)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCart_RemoveAndClear(t *testing.T) {
	t.Run("should remove an existing line", func(t *testing.T) {
		c := newCart(t)
		line, _ := c.AddItem(newDish(t, "d6", "10.00"), 1, menu.Customization{})

		c.RemoveItem(line.ID())

		assert.True(t, c.IsEmpty())
		assert.Equal(t, uint64(2), c.Version())
	})

	t.Run("removing an absent line is a no-op", func(t *testing.T) {
		c := newCart(t)
		_, _ = c.AddItem(newDish(t, "d6", "10.00"), 1, menu.Customization{})
		before := c.Version()

		c.RemoveItem(kernel.NewUUID())

		assert.Len(t, c.Snapshot(), 1)
		assert.Equal(t, before, c.Version())
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		c := newCart(t)
		_, _ = c.AddItem(newDish(t, "d6", "10.00"), 1, menu.Customization{})
		_, _ = c.AddItem(newDish(t, "d7", "9.00"), 3, menu.Customization{})

		assert.Equal(t, 4, c.ItemCount())
		c.Clear()

		assert.True(t, c.IsEmpty())
		assert.Zero(t, c.ItemCount())
	})
}

func TestCart_SnapshotAndCloneDoNotAlias(t *testing.T) {
	c := newCart(t)
	line, _ := c.AddItem(newDish(t, "d2", "9.50"), 1, menu.Customization{})

	snapshot := c.Snapshot()
	clone := c.Clone()
	require.NoError(t, c.SetQuantity(line.ID(), 4))

	assert.Equal(t, 1, snapshot[0].Quantity())
	cloned, _ := clone.Item(line.ID())
	assert.Equal(t, 1, cloned.Quantity())
}

func TestCart_Deduct(t *testing.T) {
	t.Run("keeps lines added after the snapshot", func(t *testing.T) {
		c := newCart(t)
		calamari, _ := c.AddItem(newDish(t, "d1", "12.99"), 1, menu.Customization{})
		ordered := c.Snapshot()

		_, _ = c.AddItem(newDish(t, "d9", "7.50"), 3, menu.Customization{})
		before := c.Version()
		c.Deduct(ordered)

		require.Len(t, c.Snapshot(), 1)
		assert.Equal(t, "d9", c.Snapshot()[0].DishID())
		assert.Equal(t, 3, c.ItemCount())
		_, ok := c.Item(calamari.ID())
		assert.False(t, ok)
		assert.Equal(t, before+1, c.Version())
	})

	t.Run("leaves units merged after the snapshot", func(t *testing.T) {
		c := newCart(t)
		dish := newDish(t, "d2", "9.50")
		line, _ := c.AddItem(dish, 2, menu.Customization{})
		ordered := c.Snapshot()

		_, _ = c.AddItem(dish, 1, menu.Customization{})
		c.Deduct(ordered)

		kept, ok := c.Item(line.ID())
		require.True(t, ok)
		assert.Equal(t, 1, kept.Quantity())
	})

	t.Run("nothing to deduct keeps version", func(t *testing.T) {
		c := newCart(t)
		other := newCart(t)
		_, _ = other.AddItem(newDish(t, "d4", "6.00"), 1, menu.Customization{})
		_, _ = c.AddItem(newDish(t, "d5", "8.00"), 1, menu.Customization{})

		before := c.Version()
		c.Deduct(other.Snapshot())

		assert.Equal(t, before, c.Version())
		assert.Equal(t, 1, c.ItemCount())
	})
}
