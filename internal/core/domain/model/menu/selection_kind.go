package menu

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// SelectionKind tells how many choices a customization group accepts.
type SelectionKind int

const (
	// UnknownSelection is the zero value and is never valid.
	UnknownSelection SelectionKind = iota

	// SingleSelect groups accept at most one choice (radio buttons).
	SingleSelect

	// MultiSelect groups accept any subset of their choices (checkboxes).
	MultiSelect
)

func getSelectionKindStrings() map[SelectionKind]string {
	return map[SelectionKind]string{
		UnknownSelection: "Unknown",
		SingleSelect:     "SingleSelect",
		MultiSelect:      "MultiSelect",
	}
}

// Validate rejects UnknownSelection and out-of-range values.
func (k SelectionKind) Validate() error {
	if k != SingleSelect && k != MultiSelect {
		return errs.NewValueIsInvalidErrorWithCause(
			"selection kind is invalid",
			fmt.Errorf("%d is not a valid selection kind", k),
		)
	}
	return nil
}

func (k SelectionKind) String() string {
	if str, ok := getSelectionKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
