package checkout

import (
	"context"
	"testing"

	"platbox-gateway/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Resolve(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) TransitionStatus(ctx context.Context, id string, expected, next order.OrderStatus, note string) error {
	args := m.Called(ctx, id, expected, next, note)
	return args.Error(0)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) AddNote(ctx context.Context, id, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}

func (m *MockOrderService) EmitNotice(ctx context.Context, orderID string, severity order.NoticeSeverity, message string) error {
	args := m.Called(ctx, orderID, severity, message)
	return args.Error(0)
}

func (m *MockOrderService) ReduceStock(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) EmptyCart(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) ReturnURL(o *order.Order) string {
	args := m.Called(o)
	return args.String(0)
}

func (m *MockOrderService) PaymentURL(o *order.Order) string {
	args := m.Called(o)
	return args.String(0)
}

func TestService_Process(t *testing.T) {
	pending := &order.Order{
		ID:       "ord-1",
		UserID:   7,
		Currency: "RUB",
		Total:    decimal.NewFromInt(100),
		Status:   order.StatusPending,
	}

	t.Run("Success", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders)

		orders.On("Resolve", mock.Anything, "ord-1").Return(pending, nil)
		orders.On("ReduceStock", mock.Anything, "ord-1").Return(nil)
		orders.On("EmptyCart", mock.Anything, "ord-1").Return(nil)
		orders.On("PaymentURL", pending).Return("https://shop.example/pay/ord-1")

		res, err := svc.Process(context.Background(), "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, "success", res.Result)
		assert.Equal(t, "https://shop.example/pay/ord-1", res.Redirect)
		orders.AssertExpectations(t)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders)

		orders.On("Resolve", mock.Anything, "ord-404").Return(nil, order.ErrOrderNotFound)

		res, err := svc.Process(context.Background(), "ord-404")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		orders.AssertNotCalled(t, "ReduceStock")
	})

	t.Run("StockFailureAborts", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders)

		orders.On("Resolve", mock.Anything, "ord-1").Return(pending, nil)
		orders.On("ReduceStock", mock.Anything, "ord-1").Return(assert.AnError)

		res, err := svc.Process(context.Background(), "ord-1")
		assert.Nil(t, res)
		assert.Error(t, err)
		orders.AssertNotCalled(t, "EmptyCart")
	})

	t.Run("CartFailureIsNotFatal", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders)

		orders.On("Resolve", mock.Anything, "ord-1").Return(pending, nil)
		orders.On("ReduceStock", mock.Anything, "ord-1").Return(nil)
		orders.On("EmptyCart", mock.Anything, "ord-1").Return(assert.AnError)
		orders.On("PaymentURL", pending).Return("https://shop.example/pay/ord-1")

		res, err := svc.Process(context.Background(), "ord-1")
		assert.NoError(t, err)
		assert.Equal(t, "success", res.Result)
	})
}
