package cart

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart was not created through NewCart.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Cart is the aggregate root owning a customer's line items.
//
// Cart follows these invariants:
//   - Every line item has quantity >= 1
//   - No two line items share the same dish id and customization key
//   - Line items keep insertion order
//   - version increases by one on every effective mutation
//
// Cart is not safe for concurrent use; the session store serializes access.
type Cart struct {
	id            kernel.UUID
	items         []LineItem
	version       uint64
	isConstructed bool
}

// NewCart creates an empty cart.
//
// Example:
//
//	c, err := cart.NewCart(kernel.NewUUID())
//	if err != nil {
//	    return err
//	}
//	line, err := c.AddItem(dish, 2, customization)
func NewCart(id kernel.UUID) (*Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		id:            id,
		items:         make([]LineItem, 0),
		isConstructed: true,
	}, nil
}

// Validate ensures the cart was created through NewCart.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// Version returns the mutation counter.
func (c *Cart) Version() uint64 {
	return c.version
}

// AddItem adds quantity units of dish with the given resolved customization.
//
// A quantity below 1 is clamped to 1. If a line with the same dish id and the
// same customization key exists, its quantity is incremented and that line is
// returned; otherwise a new line is appended.
func (c *Cart) AddItem(dish menu.Dish, quantity int, customization menu.Customization) (LineItem, error) {
	quantity = clampQuantity(quantity)

	for i := range c.items {
		if c.items[i].matches(dish.ID(), customization) {
			c.items[i].quantity += quantity
			c.touch()
			return c.items[i], nil
		}
	}

	item, err := NewLineItem(kernel.NewUUID(), dish.ID(), dish.Name(), dish.Price(), quantity, customization)
	if err != nil {
		return LineItem{}, err
	}

	c.items = append(c.items, item)
	c.touch()
	return item, nil
}

// SetQuantity replaces a line's quantity. Values below 1 are clamped to 1.
// Returns an ObjectNotFoundError when the line does not exist.
func (c *Cart) SetQuantity(lineItemID kernel.UUID, quantity int) error {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return errs.NewObjectNotFoundError("line item", lineItemID.String())
	}

	quantity = clampQuantity(quantity)
	if c.items[i].quantity == quantity {
		return nil
	}

	c.items[i].quantity = quantity
	c.touch()
	return nil
}

// RemoveItem deletes a line. Removing an absent line does nothing.
func (c *Cart) RemoveItem(lineItemID kernel.UUID) {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.touch()
}

// Clear removes all lines.
func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = make([]LineItem, 0)
	c.touch()
}

// Deduct takes ordered lines out of the cart. Each ordered line lowers the
// quantity of the line with the same id and removes it once nothing is left.
// Lines added after the order snapshot are kept.
func (c *Cart) Deduct(ordered []LineItem) {
	changed := false
	for _, o := range ordered {
		i := c.indexOf(o.id)
		if i < 0 {
			continue
		}

		if c.items[i].quantity > o.quantity {
			c.items[i].quantity -= o.quantity
		} else {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		changed = true
	}

	if changed {
		c.touch()
	}
}

// Item returns a copy of a line by id.
func (c *Cart) Item(lineItemID kernel.UUID) (LineItem, bool) {
	i := c.indexOf(lineItemID)
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i], true
}

// Snapshot returns a copy of the lines in insertion order.
func (c *Cart) Snapshot() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the sum of quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clone returns a deep copy, so stores can hand carts out without aliasing.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.items = c.Snapshot()
	return &clone
}

func (c *Cart) indexOf(lineItemID kernel.UUID) int {
	for i := range c.items {
		if c.items[i].id.IsEqual(lineItemID) {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.version++
}
