package tracking

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Stage is a named milestone in an order's delivery lifecycle.
type Stage struct {
	name            string
	description     string
	progressPercent int
}

// NewStage creates a Stage. progressPercent must lie in [0, 100].
func NewStage(name, description string, progressPercent int) (Stage, error) {
	s := Stage{description: description}

	if err := errors.Join(
		s.setName(name),
		s.setProgressPercent(progressPercent),
	); err != nil {
		return Stage{}, err
	}

	return s, nil
}

// DefaultStages returns the stage list every new order goes through.
func DefaultStages() []Stage {
	return []Stage{
		{name: "Order Placed", description: "We have received your order.", progressPercent: 25},
		{name: "Preparing Your Meal", description: "The restaurant is working on your order.", progressPercent: 50},
		{name: "Out for Delivery", description: "Your rider is on the way with your meal!", progressPercent: 75},
		{name: "Delivered", description: "Enjoy your food!", progressPercent: 100},
	}
}

// Name returns the stage title.
func (s Stage) Name() string {
	return s.name
}

// Description returns the customer-facing explanation.
func (s Stage) Description() string {
	return s.description
}

// ProgressPercent returns the progress shown while the order is in this stage.
func (s Stage) ProgressPercent() int {
	return s.progressPercent
}

func (s *Stage) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("stage name")
	}
	s.name = name
	return nil
}

func (s *Stage) setProgressPercent(p int) error {
	if p < 0 || p > 100 {
		return errs.NewValueIsOutOfRangeError("progress percent", p, 0, 100)
	}
	s.progressPercent = p
	return nil
}

// minStages keeps the first and the last stage distinct.
const minStages = 2

// validateStages checks there are at least two stages, every stage was
// constructed and progress never decreases.
func validateStages(stages []Stage) error {
	if len(stages) < minStages {
		return errs.NewValueIsOutOfRangeError("stage count", len(stages), minStages, "unbounded")
	}

	for i, s := range stages {
		if s.name == "" {
			return errs.NewValueIsInvalidErrorWithCause("stages", fmt.Errorf("stage %d must be created via NewStage", i))
		}
		if i > 0 && s.progressPercent < stages[i-1].progressPercent {
			return errs.NewValueIsInvalidErrorWithCause(
				"stages",
				fmt.Errorf("progress of %q is lower than of %q", s.name, stages[i-1].name),
			)
		}
	}
	return nil
}
