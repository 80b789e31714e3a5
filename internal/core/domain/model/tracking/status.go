package tracking

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// ErrTrackingIsTerminal is returned for transitions out of Delivered or Cancelled.
var ErrTrackingIsTerminal = errors.New("order tracking is already finished")

// Status represents the lifecycle state of a tracked order.
//
// State transitions:
//
//	InProgress ──┬──> Delivered
//	             │
//	             └──> Cancelled
//
// Both targets are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// InProgress is the status from placement until the last stage is reached.
	InProgress

	// Delivered is final and reached together with the last stage.
	Delivered

	// Cancelled is final and reached only through an explicit cancellation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		InProgress: "InProgress",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. when reading from storage.
func (s Status) Validate() error {
	if s != InProgress && s != Delivered && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAdvance checks that the order may still move to another stage.
func (s Status) ValidateAdvance() error {
	if s != InProgress {
		return fmt.Errorf("%w: cannot advance a %s order", ErrTrackingIsTerminal, s)
	}
	return nil
}

// Deliver transitions InProgress to Delivered.
func (s Status) Deliver() (Status, error) {
	if err := s.ValidateAdvance(); err != nil {
		return s, err
	}
	return Delivered, nil
}

// Cancel transitions InProgress to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != InProgress {
		return s, fmt.Errorf("%w: cannot cancel a %s order", ErrTrackingIsTerminal, s)
	}
	return Cancelled, nil
}
