package menu

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Dish is a menu item that can be put into a cart.
type Dish struct {
	id     string
	name   string
	price  kernel.Money
	groups []CustomizationGroup
}

// NewDish creates a Dish. Group ids must be unique within the dish.
//
// Example:
//
//	doneness, _ := menu.NewCustomizationGroup("c1", "Steak Doneness", menu.SingleSelect, true, rare, medium)
//	steak, err := menu.NewDish("d3", "Ribeye Steak", kernel.MustMoney("28.00"), doneness)
func NewDish(id, name string, price kernel.Money, groups ...CustomizationGroup) (Dish, error) {
	d := Dish{price: price}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setGroups(groups),
	); err != nil {
		return Dish{}, err
	}

	return d, nil
}

// ID returns the dish identifier.
func (d Dish) ID() string {
	return d.id
}

// Name returns the display name.
func (d Dish) Name() string {
	return d.name
}

// Price returns the base unit price before customization.
func (d Dish) Price() kernel.Money {
	return d.price
}

// Groups returns a copy of the customization groups in declared order.
func (d Dish) Groups() []CustomizationGroup {
	out := make([]CustomizationGroup, len(d.groups))
	copy(out, d.groups)
	return out
}

// IsCustomizable reports whether the dish has any customization group.
func (d Dish) IsCustomizable() bool {
	return len(d.groups) > 0
}

func (d *Dish) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("dish id")
	}
	d.id = id
	return nil
}

func (d *Dish) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("dish name")
	}
	d.name = name
	return nil
}

func (d *Dish) setGroups(groups []CustomizationGroup) error {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.id == "" {
			return errs.NewValueIsInvalidError("group must be created via NewCustomizationGroup")
		}
		if _, dup := seen[g.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("dish groups", fmt.Errorf("duplicate group id %q", g.id))
		}
		seen[g.id] = struct{}{}
	}

	d.groups = make([]CustomizationGroup, len(groups))
	copy(d.groups, groups)
	return nil
}
