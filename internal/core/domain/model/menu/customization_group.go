package menu

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// CustomizationGroup is a titled set of choices attached to a dish.
//
// Rules:
//   - a SingleSelect group never holds more than one selected choice
//   - a required SingleSelect group must hold exactly one
//   - a MultiSelect group holds zero or more
//
// Choices keep the order they were declared in, which is also the order used
// when a Customization snapshot is normalized.
type CustomizationGroup struct {
	id       string
	title    string
	kind     SelectionKind
	required bool
	choices  []Choice
}

// NewCustomizationGroup creates a group. Choice ids must be unique within the group
// and at least one choice is required.
func NewCustomizationGroup(
	id, title string,
	kind SelectionKind,
	required bool,
	choices ...Choice,
) (CustomizationGroup, error) {
	g := CustomizationGroup{required: required}

	if err := errors.Join(
		g.setID(id),
		g.setTitle(title),
		g.setKind(kind),
		g.setChoices(choices),
	); err != nil {
		return CustomizationGroup{}, err
	}

	return g, nil
}

// ID returns the group identifier, unique within its dish.
func (g CustomizationGroup) ID() string {
	return g.id
}

// Title returns the display title, e.g. "Steak Doneness".
func (g CustomizationGroup) Title() string {
	return g.title
}

// Kind returns SingleSelect or MultiSelect.
func (g CustomizationGroup) Kind() SelectionKind {
	return g.kind
}

// Required reports whether a selection must be made.
func (g CustomizationGroup) Required() bool {
	return g.required
}

// Choices returns a copy of the group's choices in declared order.
func (g CustomizationGroup) Choices() []Choice {
	out := make([]Choice, len(g.choices))
	copy(out, g.choices)
	return out
}

// Choice finds a choice by id.
func (g CustomizationGroup) Choice(id string) (Choice, bool) {
	for _, c := range g.choices {
		if c.id == id {
			return c, true
		}
	}
	return Choice{}, false
}

func (g *CustomizationGroup) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("group id")
	}
	g.id = id
	return nil
}

func (g *CustomizationGroup) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("group title")
	}
	g.title = title
	return nil
}

func (g *CustomizationGroup) setKind(kind SelectionKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	g.kind = kind
	return nil
}

func (g *CustomizationGroup) setChoices(choices []Choice) error {
	if len(choices) == 0 {
		return errs.NewValueIsRequiredError("group choices")
	}

	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		if c.id == "" {
			return errs.NewValueIsInvalidError("choice must be created via NewChoice")
		}
		if _, dup := seen[c.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("group choices", fmt.Errorf("duplicate choice id %q", c.id))
		}
		seen[c.id] = struct{}{}
	}

	g.choices = make([]Choice, len(choices))
	copy(g.choices, choices)
	return nil
}
