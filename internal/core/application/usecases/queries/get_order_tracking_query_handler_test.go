package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/trackingrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const stageInterval = 7 * time.Second

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GetOrderTrackingQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderTrackingQueryHandler
	repo      *trackingrepo.GormTrackingRepository
	placedAt  time.Time
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&trackingrepo.TrackingDTO{}))

	suite.handler = queries.NewGetOrderTrackingQueryHandler(db, stageInterval)
	suite.repo = trackingrepo.NewGormTrackingRepository(db, noopAggregateTracker{})
	suite.placedAt = time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trackings").Error)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) placeOrder() *tracking.Tracking {
	t, err := tracking.NewTracking(
		kernel.NewUUID(),
		tracking.DefaultStages(),
		[]tracking.Item{
			{Name: "Ribeye Steak", Quantity: 1, Customizations: []string{"Medium Rare"}},
			{Name: "Sparkling Lemonade", Quantity: 2},
		},
		kernel.MustMoney("41.77"),
		"221B Baker Street, London NW16XE, GB",
		suite.placedAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), t))
	return t
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_NewOrder_StartsAtFirstStage() {
	t := suite.placeOrder()
	query, _ := queries.NewGetOrderTrackingQuery(t.OrderID())

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(t.OrderID().IsEqual(resp.OrderID))
	suite.Require().Len(resp.Stages, 4)
	suite.Equal("Order Placed", resp.Stages[0].Name)
	suite.Equal(0, resp.CurrentStageIndex)
	suite.Equal(resp.Stages[0].ProgressPercent, resp.ProgressPercent)
	suite.Equal(tracking.InProgress, resp.Status)
	suite.Equal(suite.placedAt, resp.PlacedAt)
	suite.Nil(resp.DeliveredAt)
	suite.Require().NotNil(resp.EstimatedDeliveryAt)
	suite.Equal(suite.placedAt.Add(3*stageInterval), *resp.EstimatedDeliveryAt)
	suite.Equal("41.77", resp.Total.String())
	suite.Require().Len(resp.Items, 2)
	suite.Equal([]string{"Medium Rare"}, resp.Items[0].Customizations)
	suite.Empty(resp.Items[1].Customizations)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_DeliveredOrder() {
	ctx := context.Background()
	t := suite.placeOrder()
	for i := range 3 {
		suite.Require().NoError(t.Advance(suite.placedAt.Add(time.Duration(i+1) * 7 * time.Second)))
	}
	suite.Require().NoError(suite.repo.Update(ctx, t))

	query, _ := queries.NewGetOrderTrackingQuery(t.OrderID())
	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(3, resp.CurrentStageIndex)
	suite.Equal(100, resp.ProgressPercent)
	suite.Equal(tracking.Delivered, resp.Status)
	suite.Require().NotNil(resp.DeliveredAt)
	suite.Equal(suite.placedAt.Add(21*time.Second), *resp.DeliveredAt)
	suite.Require().NotNil(resp.EstimatedDeliveryAt)
	suite.Equal(*resp.DeliveredAt, *resp.EstimatedDeliveryAt)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_EstimateCountsFromLastAdvance() {
	ctx := context.Background()
	t := suite.placeOrder()
	advancedAt := suite.placedAt.Add(time.Minute)
	suite.Require().NoError(t.Advance(advancedAt))
	suite.Require().NoError(suite.repo.Update(ctx, t))

	query, _ := queries.NewGetOrderTrackingQuery(t.OrderID())
	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().NotNil(resp.EstimatedDeliveryAt)
	suite.Equal(advancedAt.Add(2*stageInterval), *resp.EstimatedDeliveryAt)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_CancelledOrder_HasNoEstimate() {
	ctx := context.Background()
	t := suite.placeOrder()
	suite.Require().NoError(t.Cancel(suite.placedAt.Add(time.Minute), "wrong address"))
	suite.Require().NoError(suite.repo.Update(ctx, t))

	query, _ := queries.NewGetOrderTrackingQuery(t.OrderID())
	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(tracking.Cancelled, resp.Status)
	suite.Nil(resp.EstimatedDeliveryAt)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, _ := queries.NewGetOrderTrackingQuery(kernel.NewUUID())

	_, err := suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderTrackingQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderTrackingQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderTrackingQuery constructor")
}

func TestGetOrderTrackingQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderTrackingQueryHandlerTestSuite))
}
