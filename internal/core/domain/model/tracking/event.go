package tracking

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// EventType names an order lifecycle event. Values are the wire names.
type EventType string

const (
	OrderPlaced        EventType = "order.placed"
	OrderStageAdvanced EventType = "order.stage_advanced"
	OrderDelivered     EventType = "order.delivered"
	OrderCancelled     EventType = "order.cancelled"
)

// Event is raised by Tracking on every state change and published after the
// change was committed.
type Event struct {
	Type            EventType
	OrderID         kernel.UUID
	StageIndex      int
	StageName       string
	ProgressPercent int
	Status          Status
	OccurredAt      time.Time
}
