package platbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"platbox-gateway/internal/logger"
	"platbox-gateway/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type checkRequest struct {
	Order struct {
		ItemList []struct {
			ID string `json:"id"`
		} `json:"item_list"`
	} `json:"order"`
	Payment struct {
		Currency string `json:"currency"`
		Amount   int64  `json:"amount"`
		Exponent int32  `json:"exponent"`
	} `json:"payment"`
}

type payRequest struct {
	MerchantTxID string `json:"merchant_tx_id"`
	PlatboxTxID  string `json:"platbox_tx_id"`
	SucceededAt  string `json:"platbox_tx_succeeded_at"`
}

type cancelRequest struct {
	MerchantTxID string `json:"merchant_tx_id"`
	CanceledAt   string `json:"platbox_tx_canceled_at"`
}

// CheckOrder handles the reservation pre-check the processor sends before
// it accepts payment. On success the order moves pending -> on-hold.
func (g *gateway) CheckOrder(ctx context.Context, rawBody []byte, signature string) *SignedResult {
	res, err := g.checkOrder(ctx, rawBody, signature)
	if err != nil {
		res = errorResult(err)
	}
	return g.seal(res)
}

func (g *gateway) checkOrder(ctx context.Context, rawBody []byte, signature string) (Result, error) {
	// The signature covers the exact bytes received. Verified before the
	// payload is even parsed, nothing else runs on a forged request.
	if !Verify(rawBody, g.creds.SecretKey, signature) {
		return nil, failCode(CodeBadSignature)
	}

	var req checkRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, failCode(CodeMalformed)
	}

	var orderID string
	if len(req.Order.ItemList) > 0 {
		orderID = req.Order.ItemList[0].ID
	}
	if orderID == "" || req.Payment.Currency == "" || req.Payment.Amount == 0 {
		return nil, failCode(CodeTechnical)
	}

	// The raw amount arrives in minor units together with its exponent.
	amount := decimal.New(req.Payment.Amount, -req.Payment.Exponent)

	log := logger.FromCtx(ctx).With(
		zap.String("action", "check"),
		zap.String("order_id", orderID),
	)

	o, err := g.orders.Resolve(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, failCode(CodeUnavailable)
		}
		log.Error("order lookup failed", zap.Error(err))
		return nil, failCode(CodeTechnical)
	}

	switch o.Status {
	case order.StatusPending:
		if o.Currency != req.Payment.Currency {
			return nil, failCode(CodeBadCurrency)
		}
		if !o.Total.Equal(amount) {
			return nil, failCode(CodeBadAmount)
		}
		// Compare-and-swap on the validated status: a concurrent callback
		// that won the race surfaces as a conflict, not a silent overwrite.
		err := g.orders.TransitionStatus(ctx, o.ID, order.StatusPending, order.StatusOnHold, "Awaiting payment")
		if err != nil {
			log.Error("failed to reserve order", zap.Error(err))
			return nil, failCode(CodeTechnical)
		}
		log.Info("order reserved")
		return Result{"status": "ok", "merchant_tx_id": o.ID}, nil
	case order.StatusOnHold:
		return nil, failCode(CodeAlreadyReserved)
	case order.StatusProcessing, order.StatusCompleted:
		return nil, failCode(CodeAlreadyCompleted)
	case order.StatusCancelled:
		return nil, failCode(CodeCancelled)
	default:
		return nil, failCode(CodeTechnical)
	}
}

// PayOrder handles the payment confirmation callback. On success the
// reserved order is marked paid.
func (g *gateway) PayOrder(ctx context.Context, rawBody []byte, signature string) *SignedResult {
	res, err := g.payOrder(ctx, rawBody, signature)
	if err != nil {
		res = errorResult(err)
	}
	return g.seal(res)
}

func (g *gateway) payOrder(ctx context.Context, rawBody []byte, signature string) (Result, error) {
	if !Verify(rawBody, g.creds.SecretKey, signature) {
		return nil, failCode(CodeBadSignature)
	}

	var req payRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, failCode(CodeMalformed)
	}
	if req.MerchantTxID == "" {
		return nil, failCode(CodeBadRequestFields)
	}
	if req.SucceededAt == "" {
		return nil, failCode(CodeBadRequestFields)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("action", "pay"),
		zap.String("order_id", req.MerchantTxID),
	)

	o, err := g.orders.Resolve(ctx, req.MerchantTxID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, failCode(CodeUnavailable)
		}
		log.Error("order lookup failed", zap.Error(err))
		return nil, failCode(CodeTechnical)
	}

	switch o.Status {
	case order.StatusPending, order.StatusOnHold:
		if req.PlatboxTxID != "" {
			note := fmt.Sprintf("Payment completed. The reference number is %s.", req.PlatboxTxID)
			if err := g.orders.AddNote(ctx, o.ID, note); err != nil {
				// The audit note is best effort, payment still completes.
				log.Warn("failed to attach reference note", zap.Error(err))
			}
		}
		if err := g.orders.MarkPaid(ctx, o.ID); err != nil {
			log.Error("failed to mark order paid", zap.Error(err))
			return nil, failCode(CodeTechnical)
		}
		log.Info("payment confirmed", zap.String("platbox_tx_id", req.PlatboxTxID))
		return Result{
			"status":                "ok",
			"merchant_tx_timestamp": g.now().Format(time.RFC3339),
		}, nil
	case order.StatusProcessing, order.StatusCompleted:
		return nil, failCode(CodeReservationStale)
	case order.StatusCancelled:
		return nil, failCode(CodeCancelled)
	default:
		return nil, failCode(CodeTechnical)
	}
}

// CancelPayment handles the payment rejection callback. The order status
// is deliberately left untouched: the upstream protocol never transitions
// on cancel, only a user-visible notice is raised.
func (g *gateway) CancelPayment(ctx context.Context, rawBody []byte, signature string) *SignedResult {
	res, err := g.cancelPayment(ctx, rawBody, signature)
	if err != nil {
		res = errorResult(err)
	}
	return g.seal(res)
}

func (g *gateway) cancelPayment(ctx context.Context, rawBody []byte, signature string) (Result, error) {
	if !Verify(rawBody, g.creds.SecretKey, signature) {
		return nil, failCode(CodeBadSignature)
	}

	var req cancelRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, failCode(CodeMalformed)
	}
	if req.MerchantTxID == "" {
		return nil, failCode(CodeBadRequestFields)
	}
	if req.CanceledAt == "" {
		return nil, failCode(CodeBadRequestFields)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("action", "cancel"),
		zap.String("order_id", req.MerchantTxID),
	)

	message := fmt.Sprintf("Transaction failed at %s", req.CanceledAt)
	if err := g.orders.EmitNotice(ctx, req.MerchantTxID, order.NoticeError, message); err != nil {
		log.Error("failed to emit cancellation notice", zap.Error(err))
		return nil, failCode(CodeTechnical)
	}

	log.Warn("payment cancelled, order status left unchanged",
		zap.String("canceled_at", req.CanceledAt))

	return Result{
		"status":                "ok",
		"merchant_tx_timestamp": g.now().Format(time.RFC3339),
	}, nil
}
