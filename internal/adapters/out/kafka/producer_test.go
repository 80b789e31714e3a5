package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderEventProducer_Publish(t *testing.T) {
	orderID := kernel.NewUUID()
	at := time.Date(2026, 5, 1, 12, 0, 7, 0, time.UTC)
	events := []tracking.Event{
		{
			Type: tracking.OrderStageAdvanced, OrderID: orderID, StageIndex: 1,
			StageName: "Preparing Your Meal", ProgressPercent: 50, Status: tracking.InProgress, OccurredAt: at,
		},
		{
			Type: tracking.OrderDelivered, OrderID: orderID, StageIndex: 3,
			StageName: "Delivered", ProgressPercent: 100, Status: tracking.Delivered, OccurredAt: at,
		},
	}

	t.Run("keys by order id and encodes JSON", func(t *testing.T) {
		ctx := t.Context()
		writer := &mockWriter{}
		var written []kafka.Message
		writer.On("WriteMessages", ctx, mock.Anything).Run(func(args mock.Arguments) {
			written = args.Get(1).([]kafka.Message)
		}).Return(nil).Once()

		before := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues("order.delivered", "ok"))

		p := newOrderEventProducer(writer, "order.changed", discardLogger())
		require.NoError(t, p.Publish(ctx, events...))

		require.Len(t, written, 2)
		assert.Equal(t, orderID.String(), string(written[0].Key))
		assert.Equal(t, written[0].Key, written[1].Key)

		var body map[string]any
		require.NoError(t, json.Unmarshal(written[1].Value, &body))
		assert.Equal(t, "order.delivered", body["type"])
		assert.Equal(t, orderID.String(), body["orderId"])
		assert.Equal(t, "Delivered", body["status"])
		assert.InDelta(t, 100, body["progressPercent"], 0)

		after := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues("order.delivered", "ok"))
		assert.InDelta(t, 1, after-before, 0)
	})

	t.Run("wraps writer errors", func(t *testing.T) {
		ctx := t.Context()
		writer := &mockWriter{}
		brokerErr := errors.New("leader not available")
		writer.On("WriteMessages", ctx, mock.Anything).Return(brokerErr).Once()

		p := newOrderEventProducer(writer, "order.changed", discardLogger())
		err := p.Publish(ctx, events[0])

		require.ErrorIs(t, err, brokerErr)
		assert.Contains(t, err.Error(), "order.changed")
	})

	t.Run("no events no write", func(t *testing.T) {
		writer := &mockWriter{}
		p := newOrderEventProducer(writer, "order.changed", discardLogger())

		require.NoError(t, p.Publish(t.Context()))
		writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}
