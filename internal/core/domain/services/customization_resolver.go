package services

import (
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"
)

// CustomizationResolver validates raw selections against a dish's customization
// groups and normalizes them.
//
// Business rules:
//   - a required SingleSelect group must have exactly one choice
//   - a SingleSelect group never accepts more than one choice
//   - a MultiSelect group accepts any subset, including none
//   - unknown groups and unknown choices are rejected
//   - repeating a choice inside a group counts it once
//
// Example usage:
//
//	resolver := services.NewCustomizationResolver()
//	customization, err := resolver.Resolve(dish.Groups(), menu.Selections{
//	    "c1": {"medium-rare"},
//	    "c3": {"fried-egg", "grilled-onions"},
//	})
//	if errors.Is(err, errs.ErrMissingRequiredSelection) {
//	    // ask the customer to pick one
//	}
type CustomizationResolver struct{}

// NewCustomizationResolver creates a CustomizationResolver.
func NewCustomizationResolver() CustomizationResolver {
	return CustomizationResolver{}
}

// Resolve returns the normalized snapshot ordered by group order, then choice
// order, with delta = Σ priceDelta of the selected choices.
//
// Errors are *errs.ValidationError values naming the group; a missing required
// selection additionally matches errs.ErrMissingRequiredSelection.
func (CustomizationResolver) Resolve(
	groups []menu.CustomizationGroup,
	selections menu.Selections,
) (menu.Customization, error) {
	known := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		known[g.ID()] = struct{}{}
	}
	for groupID := range selections {
		if _, ok := known[groupID]; !ok {
			return menu.Customization{}, errs.NewValidationError(groupID, "Unknown customization group.")
		}
	}

	entries := make([]menu.SelectedChoice, 0)
	for _, g := range groups {
		picked, err := resolveGroup(g, selections[g.ID()])
		if err != nil {
			return menu.Customization{}, err
		}
		entries = append(entries, picked...)
	}

	return menu.NewCustomization(entries), nil
}

func resolveGroup(g menu.CustomizationGroup, chosen []string) ([]menu.SelectedChoice, error) {
	chosen = dedupe(chosen)

	for _, id := range chosen {
		if _, ok := g.Choice(id); !ok {
			return nil, errs.NewValidationErrorWithCause(
				g.ID(),
				fmt.Sprintf("Unknown option for %s.", g.Title()),
				errs.NewObjectNotFoundError("choice", id),
			)
		}
	}

	if g.Kind() == menu.SingleSelect {
		if len(chosen) > 1 {
			return nil, errs.NewValidationError(g.ID(), fmt.Sprintf("Select only one option for %s.", g.Title()))
		}
		if len(chosen) == 0 && g.Required() {
			return nil, errs.NewValidationErrorWithCause(
				g.ID(),
				fmt.Sprintf("Please select an option for %s.", g.Title()),
				errs.ErrMissingRequiredSelection,
			)
		}
	}

	out := make([]menu.SelectedChoice, 0, len(chosen))
	for _, c := range g.Choices() {
		if !slices.Contains(chosen, c.ID()) {
			continue
		}
		out = append(out, menu.SelectedChoice{
			GroupID:    g.ID(),
			GroupTitle: g.Title(),
			ChoiceID:   c.ID(),
			Label:      c.Label(),
			PriceDelta: c.PriceDelta(),
		})
	}
	return out, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
