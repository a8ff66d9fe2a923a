package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"waterdelivery/internal/adapters/out/postgres/outboxrepo"
	"waterdelivery/internal/adapters/out/postgres/pgtest"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.pg.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_ThenListPending_RoundTripsPayload() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	at := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

	cancelled := event.NewOrderCancelled(orderID, &riderID, 4,
		event.Actor{ID: actorID, Role: user.Rider}, "gate locked", at).
		WithCustomer(customerID, "Sara", "House 7")

	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	pending, err := suite.repository.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)

	got := pending[0]
	suite.True(got.ID.IsEqual(cancelled.ID))
	suite.Equal(event.OrderCancelled, got.Type)
	suite.True(got.OrderID.IsEqual(orderID))
	suite.True(got.OccurredAt.Equal(at))
	suite.True(got.CustomerID.IsEqual(customerID))
	suite.Equal("Sara", got.CustomerName)
	suite.Equal("House 7", got.CustomerAddress)
	suite.Equal(4, got.Bottles)
	suite.Require().NotNil(got.RiderID)
	suite.True(got.RiderID.IsEqual(riderID))
	suite.Require().NotNil(got.ActorID)
	suite.True(got.ActorID.IsEqual(actorID))
	suite.Equal(user.Rider, got.ActorRole)
	suite.Equal("gate locked", got.Reason)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestListPending_OrderAndLimit() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	at := time.Now()
	previous := kernel.NewUUID()
	next := kernel.NewUUID()

	reassigned := event.NewOrderReassigned(orderID, previous, 2, at)
	assigned := event.NewOrderAssigned(orderID, next, 2, kernel.MoneyFromInt(20), at)
	later := event.NewOrderAssigned(kernel.NewUUID(), next, 1, kernel.MoneyFromInt(10), at)

	suite.Require().NoError(suite.repository.Add(ctx, reassigned, assigned))
	suite.Require().NoError(suite.repository.Add(ctx, later))

	first, err := suite.repository.ListPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(first, 2)
	suite.True(first[0].ID.IsEqual(reassigned.ID))
	suite.True(first[1].ID.IsEqual(assigned.ID))
	suite.Nil(first[0].ActorID)
	suite.Equal("20.00", first[1].TotalAmount.String())

	suite.Require().NoError(suite.repository.MarkSent(ctx, reassigned.ID, time.Now()))
	suite.Require().NoError(suite.repository.MarkFailed(ctx, assigned.ID, time.Now(), "push gateway down"))

	rest, err := suite.repository.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.True(rest[0].ID.IsEqual(later.ID))

	var failed outboxrepo.OutboxEventDTO
	suite.Require().NoError(suite.pg.DB.First(&failed, "id = ?", assigned.ID.Bytes()).Error)
	suite.Equal(outboxrepo.StatusFailed, failed.Status)
	suite.Equal("push gateway down", failed.Reason)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMark_Missing_NotFound() {
	err := suite.repository.MarkSent(context.Background(), kernel.NewUUID(), time.Now())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestListPending_RejectsNonPositiveLimit() {
	_, err := suite.repository.ListPending(context.Background(), 0)

	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
