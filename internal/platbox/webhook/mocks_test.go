package webhook

import (
	"context"
	"encoding/json"

	"platbox-gateway/internal/checkout"
	"platbox-gateway/internal/order"
	"platbox-gateway/internal/platbox"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) PaymentFrameURL(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) PaymentFrame(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CheckOrder(ctx context.Context, rawBody []byte, signature string) *platbox.SignedResult {
	args := m.Called(ctx, rawBody, signature)
	return args.Get(0).(*platbox.SignedResult)
}

func (m *MockGateway) PayOrder(ctx context.Context, rawBody []byte, signature string) *platbox.SignedResult {
	args := m.Called(ctx, rawBody, signature)
	return args.Get(0).(*platbox.SignedResult)
}

func (m *MockGateway) CancelPayment(ctx context.Context, rawBody []byte, signature string) *platbox.SignedResult {
	args := m.Called(ctx, rawBody, signature)
	return args.Get(0).(*platbox.SignedResult)
}

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

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Process(ctx context.Context, orderID string) (*checkout.Result, error) {
	args := m.Called(ctx, orderID)
	if r, ok := args.Get(0).(*checkout.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) SaveCallback(ctx context.Context, action string, payload json.RawMessage, signature string) (int64, error) {
	args := m.Called(ctx, action, payload, signature)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournal) MarkResult(ctx context.Context, callbackID int64, status, code string) error {
	args := m.Called(ctx, callbackID, status, code)
	return args.Error(0)
}
