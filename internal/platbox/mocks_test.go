package platbox

import (
	"context"

	"platbox-gateway/internal/order"

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
