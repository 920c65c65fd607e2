package order

import (
	"context"
	"fmt"
	"strings"

	"platbox-gateway/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the collaborator interface the gateway works against. It owns
// all order persistence; the gateway itself stores nothing durably.
type Service interface {
	Resolve(ctx context.Context, id string) (*Order, error)
	TransitionStatus(ctx context.Context, id string, expected, next OrderStatus, note string) error
	MarkPaid(ctx context.Context, id string) error
	AddNote(ctx context.Context, id, note string) error
	EmitNotice(ctx context.Context, orderID string, severity NoticeSeverity, message string) error
	ReduceStock(ctx context.Context, id string) error
	EmptyCart(ctx context.Context, id string) error
	ReturnURL(o *Order) string
	PaymentURL(o *Order) string
}

type service struct {
	repo    Repository
	baseURL string
}

func NewService(repo Repository, baseURL string) Service {
	return &service{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *service) Resolve(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrder(ctx, id)
}

func (s *service) TransitionStatus(ctx context.Context, id string, expected, next OrderStatus, note string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", id),
		zap.String("from", string(expected)),
		zap.String("to", string(next)),
	)

	if err := s.repo.UpdateStatus(ctx, id, expected, next); err != nil {
		log.Warn("order status transition failed", zap.Error(err))
		return err
	}

	if note != "" {
		if err := s.repo.AddNote(ctx, id, note); err != nil {
			// The transition itself succeeded, a lost note is not fatal.
			log.Warn("failed to record transition note", zap.Error(err))
		}
	}

	log.Info("order status updated")
	return nil
}

func (s *service) MarkPaid(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(zap.String("order_id", id))

	if err := s.repo.MarkPaid(ctx, id); err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return err
	}

	log.Info("order marked as paid")
	return nil
}

func (s *service) AddNote(ctx context.Context, id, note string) error {
	return s.repo.AddNote(ctx, id, note)
}

func (s *service) EmitNotice(ctx context.Context, orderID string, severity NoticeSeverity, message string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("severity", string(severity)),
	)

	noticeID := uuid.NewString()
	if err := s.repo.SaveNotice(ctx, noticeID, orderID, string(severity), message); err != nil {
		log.Error("failed to emit user notice", zap.Error(err))
		return err
	}

	log.Info("user notice emitted", zap.String("notice_id", noticeID))
	return nil
}

func (s *service) ReduceStock(ctx context.Context, id string) error {
	return s.repo.ReduceStock(ctx, id)
}

func (s *service) EmptyCart(ctx context.Context, id string) error {
	return s.repo.ClearCart(ctx, id)
}

// ReturnURL is the "back to the shop" link shown after a finished payment.
func (s *service) ReturnURL(o *Order) string {
	return fmt.Sprintf("%s/checkout/order-received/%s", s.baseURL, o.ID)
}

// PaymentURL is the hosted page that embeds the payment frame.
func (s *service) PaymentURL(o *Order) string {
	return fmt.Sprintf("%s/pay/%s", s.baseURL, o.ID)
}
