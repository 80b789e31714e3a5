// Package trackingrepo persists placed orders and their tracking progress.
// Stages and items are small, always read together with the order, and stored
// as JSON columns next to it.
package trackingrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrackingDTO is the row of the trackings table.
type TrackingDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Stages          []StageDTO `gorm:"type:jsonb;serializer:json;not null"`
	CurrentIndex    int        `gorm:"not null"`
	Status          int        `gorm:"index;not null"`
	PlacedAt        time.Time  `gorm:"not null"`
	LastAdvancedAt  time.Time  `gorm:"not null"`
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
	DeliveryAddress string          `gorm:"not null"`
	Items           []ItemDTO       `gorm:"type:jsonb;serializer:json;not null"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName overrides GORM's default table name.
func (TrackingDTO) TableName() string {
	return "trackings"
}

// StageDTO is one element of the stages column.
type StageDTO struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ProgressPercent int    `json:"progressPercent"`
}

// ItemDTO is one element of the items column.
type ItemDTO struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
}

func fromDomain(t *tracking.Tracking) TrackingDTO {
	s := t.Snapshot()

	stages := make([]StageDTO, 0, len(s.Stages))
	for _, st := range s.Stages {
		stages = append(stages, StageDTO{
			Name:            st.Name(),
			Description:     st.Description(),
			ProgressPercent: st.ProgressPercent(),
		})
	}

	items := make([]ItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemDTO{
			Name:           it.Name,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
		})
	}

	return TrackingDTO{
		ID:              s.OrderID.Bytes(),
		Stages:          stages,
		CurrentIndex:    s.CurrentIndex,
		Status:          int(s.Status),
		PlacedAt:        s.PlacedAt,
		LastAdvancedAt:  s.LastAdvancedAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
		CancelReason:    s.CancelReason,
		DeliveryAddress: s.DeliveryAddress,
		Items:           items,
		Total:           s.Total.Amount(),
	}
}

func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stages := make([]tracking.Stage, 0, len(dto.Stages))
	for _, st := range dto.Stages {
		stage, stageErr := tracking.NewStage(st.Name, st.Description, st.ProgressPercent)
		if stageErr != nil {
			return nil, stageErr
		}
		stages = append(stages, stage)
	}

	items := make([]tracking.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, tracking.Item{
			Name:           it.Name,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
		})
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreTracking(tracking.Snapshot{
		OrderID:         id,
		Stages:          stages,
		CurrentIndex:    dto.CurrentIndex,
		Status:          tracking.Status(dto.Status),
		PlacedAt:        dto.PlacedAt.UTC(),
		LastAdvancedAt:  dto.LastAdvancedAt.UTC(),
		DeliveredAt:     utc(dto.DeliveredAt),
		CancelledAt:     utc(dto.CancelledAt),
		CancelReason:    dto.CancelReason,
		DeliveryAddress: dto.DeliveryAddress,
		Items:           items,
		Total:           total,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
