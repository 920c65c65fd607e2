package checkout

import (
	"context"

	"platbox-gateway/internal/logger"
	"platbox-gateway/internal/order"

	"go.uber.org/zap"
)

// Result mirrors the shop's expected process_payment response: a status
// flag plus the page the customer is sent to next.
type Result struct {
	Result   string `json:"result"`
	Redirect string `json:"redirect"`
}

type Service interface {
	Process(ctx context.Context, orderID string) (*Result, error)
}

type service struct {
	orders order.Service
}

func NewService(orders order.Service) Service {
	return &service{orders: orders}
}

// Process runs the checkout side effects for an order about to be paid:
// stock is reserved and the cart cleared, then the customer is redirected
// to the hosted payment page. The actual money movement happens later via
// the processor's callbacks.
func (s *service) Process(ctx context.Context, orderID string) (*Result, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	o, err := s.orders.Resolve(ctx, orderID)
	if err != nil {
		log.Warn("checkout for unknown order", zap.Error(err))
		return nil, err
	}

	if err := s.orders.ReduceStock(ctx, o.ID); err != nil {
		log.Error("failed to reduce stock", zap.Error(err))
		return nil, err
	}

	if err := s.orders.EmptyCart(ctx, o.ID); err != nil {
		// Leftover cart contents are an annoyance, not a checkout failure.
		log.Warn("failed to empty cart", zap.Error(err))
	}

	log.Info("checkout processed")

	return &Result{
		Result:   "success",
		Redirect: s.orders.PaymentURL(o),
	}, nil
}
