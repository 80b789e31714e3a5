package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrTrackingIsNotConstructed is returned when a Tracking was not created
// through NewTracking or RestoreTracking.
var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

// Item is a line of the placed order as shown on the tracking page.
type Item struct {
	Name           string
	Quantity       int
	Customizations []string
}

// Tracking is the aggregate root for a placed order's delivery progress.
//
// Tracking follows these invariants:
//   - currentIndex is within [0, len(stages)-1] and never decreases
//   - every Advance moves currentIndex by exactly one
//   - deliveredAt is set exactly once, when the last stage is first reached
//   - Delivered and Cancelled trackings accept no further transitions
//
// Tracking is the only writer of its stage index.
type Tracking struct {
	orderID         kernel.UUID
	stages          []Stage
	currentIndex    int
	status          Status
	placedAt        time.Time
	lastAdvancedAt  time.Time
	deliveredAt     *time.Time
	cancelledAt     *time.Time
	cancelReason    string
	deliveryAddress string
	items           []Item
	total           kernel.Money

	events []Event

	isConstructed bool
}

// NewTracking places an order: index 0, InProgress, placedAt = lastAdvancedAt = now.
// Raises OrderPlaced.
//
// Example:
//
//	t, err := tracking.NewTracking(orderID, tracking.DefaultStages(), items, breakdown.Total,
//	    form.DeliveryAddress(), clock.Now())
//	if err != nil {
//	    return err
//	}
//	err = uow.TrackingRepository().Add(ctx, t)
func NewTracking(
	orderID kernel.UUID,
	stages []Stage,
	items []Item,
	total kernel.Money,
	deliveryAddress string,
	now time.Time,
) (*Tracking, error) {
	t := &Tracking{
		status:         InProgress,
		placedAt:       now,
		lastAdvancedAt: now,
		total:          total,
		isConstructed:  true,
	}

	if err := errors.Join(
		t.setOrderID(orderID),
		t.setStages(stages),
		t.setItems(items),
		t.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	t.raise(OrderPlaced, now)
	return t, nil
}

// Snapshot is the full state of a Tracking, used by persistence adapters.
type Snapshot struct {
	OrderID         kernel.UUID
	Stages          []Stage
	CurrentIndex    int
	Status          Status
	PlacedAt        time.Time
	LastAdvancedAt  time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
	DeliveryAddress string
	Items           []Item
	Total           kernel.Money
}

// RestoreTracking rebuilds a Tracking from stored state and re-checks its
// invariants. No events are raised.
func RestoreTracking(s Snapshot) (*Tracking, error) {
	t := &Tracking{
		placedAt:       s.PlacedAt,
		lastAdvancedAt: s.LastAdvancedAt,
		deliveredAt:    s.DeliveredAt,
		cancelledAt:    s.CancelledAt,
		cancelReason:   s.CancelReason,
		total:          s.Total,
		isConstructed:  true,
	}

	if err := errors.Join(
		t.setOrderID(s.OrderID),
		t.setStages(s.Stages),
		t.setItems(s.Items),
		t.setDeliveryAddress(s.DeliveryAddress),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Stages) {
		return nil, errs.NewValueIsOutOfRangeError("current stage index", s.CurrentIndex, 0, len(s.Stages)-1)
	}
	terminal := s.CurrentIndex == len(s.Stages)-1
	if (s.Status == Delivered) != (terminal && s.DeliveredAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is inconsistent with stage %d of %d", s.Status, s.CurrentIndex+1, len(s.Stages)),
		)
	}
	if s.Status == InProgress && terminal {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			errors.New("in-progress order cannot be on the last stage"),
		)
	}
	if (s.Status == Cancelled) != (s.CancelledAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			errors.New("cancelledAt must be set exactly for cancelled orders"),
		)
	}

	t.currentIndex = s.CurrentIndex
	t.status = s.Status
	return t, nil
}

// Snapshot exports the current state.
func (t *Tracking) Snapshot() Snapshot {
	return Snapshot{
		OrderID:         t.orderID,
		Stages:          t.Stages(),
		CurrentIndex:    t.currentIndex,
		Status:          t.status,
		PlacedAt:        t.placedAt,
		LastAdvancedAt:  t.lastAdvancedAt,
		DeliveredAt:     copyTime(t.deliveredAt),
		CancelledAt:     copyTime(t.cancelledAt),
		CancelReason:    t.cancelReason,
		DeliveryAddress: t.deliveryAddress,
		Items:           t.Items(),
		Total:           t.total,
	}
}

// Validate ensures the tracking was created through a constructor.
func (t *Tracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

// IsEqual compares trackings by order id.
func (t *Tracking) IsEqual(other *Tracking) bool {
	return other != nil && t.orderID.IsEqual(other.orderID)
}

// OrderID returns the tracked order's id.
func (t *Tracking) OrderID() kernel.UUID {
	return t.orderID
}

// Stages returns a copy of the stage list.
func (t *Tracking) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

// CurrentStageIndex returns the 0-based index of the current stage.
func (t *Tracking) CurrentStageIndex() int {
	return t.currentIndex
}

// CurrentStage returns the current stage.
func (t *Tracking) CurrentStage() Stage {
	return t.stages[t.currentIndex]
}

// ProgressPercent is the current stage's progress.
func (t *Tracking) ProgressPercent() int {
	return t.CurrentStage().progressPercent
}

// IsTerminal reports whether the last stage was reached.
func (t *Tracking) IsTerminal() bool {
	return t.currentIndex == len(t.stages)-1
}

// Status returns the lifecycle status.
func (t *Tracking) Status() Status {
	return t.status
}

// PlacedAt returns when the order was placed.
func (t *Tracking) PlacedAt() time.Time {
	return t.placedAt
}

// LastAdvancedAt returns when the stage last changed, or the placement time.
func (t *Tracking) LastAdvancedAt() time.Time {
	return t.lastAdvancedAt
}

// DeliveredAt is nil until the last stage is reached.
func (t *Tracking) DeliveredAt() *time.Time {
	return copyTime(t.deliveredAt)
}

// CancelledAt is nil unless the order was cancelled.
func (t *Tracking) CancelledAt() *time.Time {
	return copyTime(t.cancelledAt)
}

// CancelReason is empty unless the order was cancelled.
func (t *Tracking) CancelReason() string {
	return t.cancelReason
}

// DeliveryAddress returns the address the order is delivered to.
func (t *Tracking) DeliveryAddress() string {
	return t.deliveryAddress
}

// Items returns a copy of the ordered items.
func (t *Tracking) Items() []Item {
	out := make([]Item, len(t.items))
	for i, item := range t.items {
		out[i] = item
		out[i].Customizations = append([]string(nil), item.Customizations...)
	}
	return out
}

// Total returns the amount charged for the order.
func (t *Tracking) Total() kernel.Money {
	return t.total
}

// EstimatedDeliveryAt is when the order should reach its last stage if every
// remaining stage takes interval.
func (t *Tracking) EstimatedDeliveryAt(interval time.Duration) *time.Time {
	return EstimateDeliveryAt(t.status, len(t.stages)-1-t.currentIndex, t.lastAdvancedAt, t.deliveredAt, interval)
}

// EstimateDeliveryAt counts remainingStages intervals from lastAdvancedAt.
// Delivered orders report deliveredAt; cancelled orders have no estimate.
func EstimateDeliveryAt(
	status Status,
	remainingStages int,
	lastAdvancedAt time.Time,
	deliveredAt *time.Time,
	interval time.Duration,
) *time.Time {
	switch status {
	case Delivered:
		return copyTime(deliveredAt)
	case InProgress:
		eta := lastAdvancedAt.Add(time.Duration(remainingStages) * interval)
		return &eta
	default:
		return nil
	}
}

// DueForAdvance reports whether an in-progress order has waited at least
// interval since its last stage change.
func (t *Tracking) DueForAdvance(now time.Time, interval time.Duration) bool {
	return t.status == InProgress && !now.Before(t.lastAdvancedAt.Add(interval))
}

// Advance moves to the next stage. Reaching the last stage marks the order
// Delivered and records deliveredAt. Returns ErrTrackingIsTerminal once the
// order is Delivered or Cancelled.
func (t *Tracking) Advance(now time.Time) error {
	if err := t.status.ValidateAdvance(); err != nil {
		return err
	}

	t.currentIndex++
	t.lastAdvancedAt = now

	if !t.IsTerminal() {
		t.raise(OrderStageAdvanced, now)
		return nil
	}

	status, err := t.status.Deliver()
	if err != nil {
		return err
	}
	t.status = status
	if t.deliveredAt == nil {
		delivered := now
		t.deliveredAt = &delivered
	}
	t.raise(OrderDelivered, now)
	return nil
}

// Cancel stops an in-progress order. Delivered and Cancelled orders return
// ErrTrackingIsTerminal.
func (t *Tracking) Cancel(now time.Time, reason string) error {
	status, err := t.status.Cancel()
	if err != nil {
		return err
	}

	t.status = status
	cancelled := now
	t.cancelledAt = &cancelled
	t.cancelReason = strings.TrimSpace(reason)
	t.raise(OrderCancelled, now)
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (t *Tracking) DomainEvents() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// ClearDomainEvents drops raised events after they were published.
func (t *Tracking) ClearDomainEvents() {
	t.events = nil
}

func (t *Tracking) raise(eventType EventType, now time.Time) {
	stage := t.CurrentStage()
	t.events = append(t.events, Event{
		Type:            eventType,
		OrderID:         t.orderID,
		StageIndex:      t.currentIndex,
		StageName:       stage.name,
		ProgressPercent: stage.progressPercent,
		Status:          t.status,
		OccurredAt:      now,
	})
}

func (t *Tracking) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Tracking) setStages(stages []Stage) error {
	if err := validateStages(stages); err != nil {
		return err
	}
	t.stages = make([]Stage, len(stages))
	copy(t.stages, stages)
	return nil
}

func (t *Tracking) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"order items",
				fmt.Errorf("%q has quantity %d", item.Name, item.Quantity),
			)
		}
	}
	t.items = make([]Item, len(items))
	for i, item := range items {
		t.items[i] = item
		t.items[i].Customizations = append([]string(nil), item.Customizations...)
	}
	return nil
}

func (t *Tracking) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	t.deliveryAddress = address
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
