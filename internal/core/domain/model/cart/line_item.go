package cart

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"
)

// MinQuantity is the smallest quantity a line item can hold.
const MinQuantity = 1

// LineItem is one purchasable cart entry. It is a value: the Cart hands out
// copies and is the only place quantities change.
type LineItem struct {
	id            kernel.UUID
	dishID        string
	name          string
	unitPrice     kernel.Money
	quantity      int
	customization menu.Customization
}

// NewLineItem creates a line item, clamping quantity to MinQuantity.
func NewLineItem(
	id kernel.UUID,
	dishID, name string,
	unitPrice kernel.Money,
	quantity int,
	customization menu.Customization,
) (LineItem, error) {
	item := LineItem{
		unitPrice:     unitPrice,
		quantity:      clampQuantity(quantity),
		customization: customization,
	}

	if err := errors.Join(
		item.setID(id),
		item.setDishID(dishID),
		item.setName(name),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// ID returns the line identifier.
func (l LineItem) ID() kernel.UUID {
	return l.id
}

// DishID returns the id of the dish this line was created from.
func (l LineItem) DishID() string {
	return l.dishID
}

// Name returns the dish name captured when the line was added.
func (l LineItem) Name() string {
	return l.name
}

// UnitPrice returns the base dish price captured when the line was added.
func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity is always >= MinQuantity.
func (l LineItem) Quantity() int {
	return l.quantity
}

// CustomizationDelta is the per-unit surcharge of the selected choices.
func (l LineItem) CustomizationDelta() kernel.Money {
	return l.customization.Delta()
}

// Customization returns the normalized selection snapshot.
func (l LineItem) Customization() menu.Customization {
	return l.customization
}

// LineTotal returns (unitPrice + customizationDelta) * quantity.
func (l LineItem) LineTotal() kernel.Money {
	return l.unitPrice.Add(l.customization.Delta()).Times(l.quantity)
}

func (l LineItem) matches(dishID string, customization menu.Customization) bool {
	return l.dishID == dishID && l.customization.IsEqual(customization)
}

func (l *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *LineItem) setDishID(dishID string) error {
	if strings.TrimSpace(dishID) == "" {
		return errs.NewValueIsRequiredError("dish id")
	}
	l.dishID = dishID
	return nil
}

func (l *LineItem) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	l.name = name
	return nil
}

func clampQuantity(n int) int {
	return max(MinQuantity, n)
}
