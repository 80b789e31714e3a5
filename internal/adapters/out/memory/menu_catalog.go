package memory

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"
)

// MenuCatalog implements ports.MenuCatalog over a fixed dish list.
type MenuCatalog struct {
	dishes []menu.Dish
	byID   map[string]menu.Dish
}

// NewMenuCatalog indexes dishes by id. Duplicate ids are rejected.
func NewMenuCatalog(dishes ...menu.Dish) (*MenuCatalog, error) {
	c := &MenuCatalog{
		dishes: make([]menu.Dish, 0, len(dishes)),
		byID:   make(map[string]menu.Dish, len(dishes)),
	}

	for _, d := range dishes {
		if _, ok := c.byID[d.ID()]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("dish id", errors.New("duplicate dish id "+d.ID()))
		}
		c.byID[d.ID()] = d
		c.dishes = append(c.dishes, d)
	}

	return c, nil
}

// NewSeededMenuCatalog returns the restaurant's menu.
func NewSeededMenuCatalog() (*MenuCatalog, error) {
	dishes, err := seedDishes()
	if err != nil {
		return nil, err
	}
	return NewMenuCatalog(dishes...)
}

// GetDish returns errs.ObjectNotFoundError for unknown ids.
func (c *MenuCatalog) GetDish(_ context.Context, dishID string) (menu.Dish, error) {
	d, ok := c.byID[dishID]
	if !ok {
		return menu.Dish{}, errs.NewObjectNotFoundError("dish", dishID)
	}
	return d, nil
}

// ListDishes returns the dishes in menu order.
func (c *MenuCatalog) ListDishes(_ context.Context) ([]menu.Dish, error) {
	out := make([]menu.Dish, len(c.dishes))
	copy(out, c.dishes)
	return out, nil
}

func seedDishes() ([]menu.Dish, error) {
	var b seedBuilder

	steakGroups := []menu.CustomizationGroup{
		b.group("c1", "Steak Doneness", menu.SingleSelect, true,
			b.choice("c1o1", "Rare", "0"),
			b.choice("c1o2", "Medium Rare", "0"),
			b.choice("c1o3", "Medium", "0"),
			b.choice("c1o4", "Well Done", "0"),
		),
		b.group("c2", "Sauce Choice", menu.SingleSelect, true,
			b.choice("c2o1", "Peppercorn", "0"),
			b.choice("c2o2", "Mushroom", "0"),
			b.choice("c2o3", "Bearnaise", "2.00"),
		),
		b.group("c3", "Add Ons", menu.MultiSelect, false,
			b.choice("c3o1", "Grilled Onions", "1.50"),
			b.choice("c3o2", "Fried Egg", "2.00"),
		),
	}
	risottoGroups := []menu.CustomizationGroup{
		b.group("c4", "Add Protein", menu.SingleSelect, false,
			b.choice("c4o1", "No Protein", "0"),
			b.choice("c4o2", "Chicken", "4.00"),
			b.choice("c4o3", "Shrimp", "6.00"),
		),
	}

	dishes := []menu.Dish{
		b.dish("d1", "Crispy Calamari Rings", "12.99"),
		b.dish("d2", "Caprese Skewers", "9.50"),
		b.dish("d3", "Signature Steak Frites", "28.00", steakGroups...),
		b.dish("d4", "Pan-Seared Salmon", "24.50"),
		b.dish("d5", "Truffle Risotto", "22.00", risottoGroups...),
		b.dish("d6", "Chocolate Lava Cake", "10.00"),
		b.dish("d7", "Classic Tiramisu", "9.00"),
	}

	if b.err != nil {
		return nil, b.err
	}
	return dishes, nil
}

// seedBuilder collects the first construction error so the seed reads as data.
type seedBuilder struct {
	err error
}

func (b *seedBuilder) money(amount string) kernel.Money {
	m, err := kernel.MoneyFromString(amount)
	b.keep(err)
	return m
}

func (b *seedBuilder) choice(id, label, delta string) menu.Choice {
	c, err := menu.NewChoice(id, label, b.money(delta))
	b.keep(err)
	return c
}

func (b *seedBuilder) group(
	id, title string,
	kind menu.SelectionKind,
	required bool,
	choices ...menu.Choice,
) menu.CustomizationGroup {
	g, err := menu.NewCustomizationGroup(id, title, kind, required, choices...)
	b.keep(err)
	return g
}

func (b *seedBuilder) dish(id, name, price string, groups ...menu.CustomizationGroup) menu.Dish {
	d, err := menu.NewDish(id, name, b.money(price), groups...)
	b.keep(err)
	return d
}

func (b *seedBuilder) keep(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}
