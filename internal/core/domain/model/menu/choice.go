package menu

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Choice is a single option inside a CustomizationGroup.
type Choice struct {
	id         string
	label      string
	priceDelta kernel.Money
}

// NewChoice creates a Choice. id and label must be non-blank; priceDelta is
// already non-negative by construction of kernel.Money.
func NewChoice(id, label string, priceDelta kernel.Money) (Choice, error) {
	c := Choice{priceDelta: priceDelta}

	if err := errors.Join(
		c.setID(id),
		c.setLabel(label),
	); err != nil {
		return Choice{}, err
	}

	return c, nil
}

// ID returns the choice identifier, unique within its group.
func (c Choice) ID() string {
	return c.id
}

// Label returns the display name.
func (c Choice) Label() string {
	return c.label
}

// PriceDelta returns the amount added to the unit price when selected.
func (c Choice) PriceDelta() kernel.Money {
	return c.priceDelta
}

func (c *Choice) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("choice id")
	}
	c.id = id
	return nil
}

func (c *Choice) setLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errs.NewValueIsRequiredError("choice label")
	}
	c.label = label
	return nil
}
