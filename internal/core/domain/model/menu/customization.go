package menu

import (
	"strings"

	"storefront/internal/core/domain/model/kernel"
)

// Selections is raw customer input: group id to the chosen choice ids.
type Selections map[string][]string

// SelectedChoice is one entry of a Customization snapshot.
type SelectedChoice struct {
	GroupID    string
	GroupTitle string
	ChoiceID   string
	Label      string
	PriceDelta kernel.Money
}

// Customization is the normalized snapshot of a customer's choices for one dish.
// Entries are ordered by group order in the dish, then by choice order within
// the group, so two snapshots selecting the same choices compare equal by Key.
//
// The zero value is the empty customization with a zero delta.
type Customization struct {
	choices []SelectedChoice
	delta   kernel.Money
}

// NewCustomization builds a snapshot from already ordered entries and sums their deltas.
func NewCustomization(choices []SelectedChoice) Customization {
	c := Customization{choices: make([]SelectedChoice, len(choices))}
	copy(c.choices, choices)

	for _, sc := range choices {
		c.delta = c.delta.Add(sc.PriceDelta)
	}
	return c
}

// Choices returns a copy of the snapshot entries.
func (c Customization) Choices() []SelectedChoice {
	out := make([]SelectedChoice, len(c.choices))
	copy(out, c.choices)
	return out
}

// Delta is the sum of the selected choices' price deltas.
func (c Customization) Delta() kernel.Money {
	return c.delta
}

// IsEmpty reports whether nothing was selected.
func (c Customization) IsEmpty() bool {
	return len(c.choices) == 0
}

// Labels returns the selected choice labels in snapshot order.
func (c Customization) Labels() []string {
	out := make([]string, 0, len(c.choices))
	for _, sc := range c.choices {
		out = append(out, sc.Label)
	}
	return out
}

// Key identifies the snapshot, e.g. "c1=rare;c3=egg,onions". Empty for no choices.
func (c Customization) Key() string {
	var b strings.Builder
	lastGroup := ""
	for i, sc := range c.choices {
		switch {
		case i == 0:
			b.WriteString(sc.GroupID)
			b.WriteByte('=')
		case sc.GroupID != lastGroup:
			b.WriteByte(';')
			b.WriteString(sc.GroupID)
			b.WriteByte('=')
		default:
			b.WriteByte(',')
		}
		b.WriteString(sc.ChoiceID)
		lastGroup = sc.GroupID
	}
	return b.String()
}

// IsEqual compares snapshots by Key.
func (c Customization) IsEqual(other Customization) bool {
	return c.Key() == other.Key()
}
