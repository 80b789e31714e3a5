package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrAdvanceTrackingsCommandIsNotConstructed = errors.New(
	"AdvanceTrackingsCommand must be created via NewAdvanceTrackingsCommand constructor",
)

// AdvanceTrackingsCommand moves every in-progress order that is due by exactly
// one stage. It is parameterless and meant to be run on a fixed tick.
//
// Example:
//
//	cmd := NewAdvanceTrackingsCommand()
//	handler := NewAdvanceTrackingsCommandHandler(uowFactory, clock, 7*time.Second)
//
//	// Run every second; each order still moves at most once per interval
//	advanced, err := handler.Handle(ctx, cmd)
type AdvanceTrackingsCommand struct {
	guard guard.ConstructorGuard
}

// NewAdvanceTrackingsCommand creates the command.
func NewAdvanceTrackingsCommand() AdvanceTrackingsCommand {
	return AdvanceTrackingsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceTrackingsCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTrackingsCommandIsNotConstructed)
}
