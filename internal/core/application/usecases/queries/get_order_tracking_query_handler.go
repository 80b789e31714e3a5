package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads placed orders straight from the
// trackings table. The delivery estimate assumes every remaining stage takes
// stageInterval.
type GetOrderTrackingQueryHandler struct {
	db            *gorm.DB
	stageInterval time.Duration
}

// NewGetOrderTrackingQueryHandler creates the handler.
func NewGetOrderTrackingQueryHandler(db *gorm.DB, stageInterval time.Duration) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db, stageInterval: stageInterval}
}

// Handle returns errs.ObjectNotFoundError for unknown orders.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			stages,
			current_index,
			status,
			placed_at,
			last_advanced_at,
			delivered_at,
			cancelled_at,
			cancel_reason,
			delivery_address,
			items,
			total
		FROM trackings
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		resp          GetOrderTrackingQueryResponse
		id            uuid.UUID
		stages, items []byte
		status        int
		placedAt      time.Time
		advancedAt    time.Time
		total         decimal.Decimal
	)
	err = rows.Scan(
		&id,
		&stages,
		&resp.CurrentStageIndex,
		&status,
		&placedAt,
		&advancedAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
		&resp.CancelReason,
		&resp.DeliveryAddress,
		&items,
		&total,
	)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if resp.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if err = json.Unmarshal(stages, &resp.Stages); err != nil {
		return GetOrderTrackingQueryResponse{}, fmt.Errorf("decode stages: %w", err)
	}
	if err = json.Unmarshal(items, &resp.Items); err != nil {
		return GetOrderTrackingQueryResponse{}, fmt.Errorf("decode items: %w", err)
	}
	if resp.CurrentStageIndex < 0 || resp.CurrentStageIndex >= len(resp.Stages) {
		return GetOrderTrackingQueryResponse{}, errs.NewValueIsOutOfRangeError(
			"current stage index", resp.CurrentStageIndex, 0, len(resp.Stages)-1,
		)
	}
	resp.ProgressPercent = resp.Stages[resp.CurrentStageIndex].ProgressPercent

	resp.Status = tracking.Status(status)
	if err = resp.Status.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp.PlacedAt = placedAt.UTC()
	resp.DeliveredAt = utcPtr(resp.DeliveredAt)
	resp.CancelledAt = utcPtr(resp.CancelledAt)
	resp.EstimatedDeliveryAt = tracking.EstimateDeliveryAt(
		resp.Status,
		len(resp.Stages)-1-resp.CurrentStageIndex,
		advancedAt.UTC(),
		resp.DeliveredAt,
		h.stageInterval,
	)
	return resp, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
