package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetSettledBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func TestGetSettledOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	query, err := queries.NewGetSettledOrdersQuery(from, to)
	require.NoError(t, err)

	t.Run("should sum collected receivable and payable", func(t *testing.T) {
		delivered := deliveredOrder(t, "100", "60", from.Add(9*time.Hour))
		overpaid := deliveredOrder(t, "50", "80", from.Add(11*time.Hour))

		repo := new(MockOrderRepository)
		repo.On("GetSettledBetween", ctx, from, to).Return([]*order.Order{delivered, overpaid}, nil).Once()

		resp, err := queries.NewGetSettledOrdersQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, resp.Orders, 2)
		assert.Equal(t, "140.00", resp.Collected.String())
		assert.Equal(t, "40.00", resp.Receivable.String())
		assert.Equal(t, "30.00", resp.Payable.String())
		assert.True(t, resp.Orders[0].SettledAt.Equal(from.Add(9*time.Hour)))
		assert.Equal(t, order.Delivered, resp.Orders[1].Status)
		repo.AssertExpectations(t)
	})

	t.Run("should return empty report", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("GetSettledBetween", ctx, from, to).Return([]*order.Order{}, nil).Once()

		resp, err := queries.NewGetSettledOrdersQueryHandler(repo).Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, resp.Orders)
		assert.Empty(t, resp.Orders)
		assert.True(t, resp.Collected.IsZero())
	})

	t.Run("should propagate store errors", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := new(MockOrderRepository)
		repo.On("GetSettledBetween", ctx, from, to).Return(nil, dbErr).Once()

		_, err := queries.NewGetSettledOrdersQueryHandler(repo).Handle(ctx, query)

		require.ErrorIs(t, err, dbErr)
	})

	t.Run("should reject unconstructed query", func(t *testing.T) {
		repo := new(MockOrderRepository)

		_, err := queries.NewGetSettledOrdersQueryHandler(repo).Handle(ctx, queries.GetSettledOrdersQuery{})

		require.ErrorIs(t, err, queries.ErrGetSettledOrdersQueryIsNotConstructed)
		repo.AssertNotCalled(t, "GetSettledBetween", mock.Anything, mock.Anything, mock.Anything)
	})
}

func deliveredOrder(t *testing.T, amount, paid string, at time.Time) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	paidAmount, err := kernel.MoneyFromString(paid)
	require.NoError(t, err)
	riderID := kernel.NewUUID()

	o, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		RiderID:         &riderID,
		Type:            order.Delivery,
		Priority:        order.Normal,
		Bottles:         1,
		UnitPrice:       price,
		CustomerBalance: kernel.ZeroMoney(),
		CreatedAt:       at.Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, o.Deliver(paidAmount, order.Cash, at))
	return o
}
