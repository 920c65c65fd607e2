package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"platbox-gateway/internal/checkout"
	"platbox-gateway/internal/journal"
	"platbox-gateway/internal/logger"
	"platbox-gateway/internal/order"
	"platbox-gateway/internal/platbox"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// SignatureHeader carries the HMAC on both legs of a callback exchange.
const SignatureHeader = "X-Signature"

// Handler exposes the gateway over HTTP: the processor callback endpoint,
// the hosted payment page and the checkout hook.
type Handler struct {
	Gateway     platbox.Gateway
	Orders      order.Service
	Checkout    checkout.Service
	Journal     journal.Repository
	CheckoutURL string
}

func NewHandler(gw platbox.Gateway, orders order.Service, co checkout.Service, jr journal.Repository, checkoutURL string) *Handler {
	return &Handler{
		Gateway:     gw,
		Orders:      orders,
		Checkout:    co,
		Journal:     jr,
		CheckoutURL: checkoutURL,
	}
}

// GatewayCallback dispatches an inbound signed callback by its declared
// action. Dispatcher-level failures (unreadable body, missing or unknown
// action) answer the generic technical error without a response signature;
// everything past this point returns a signed envelope.
func (h *Handler) GatewayCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warn("failed to read callback body", zap.Error(err))
		writeTechnicalError(w)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(SignatureHeader)

	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Action == "" {
		log.Warn("callback with missing or unparseable action")
		writeTechnicalError(w)
		return
	}

	// Audit trail first. A journal failure is logged and ignored, the
	// processor's callback must still be answered.
	journalID, err := h.Journal.SaveCallback(ctx, probe.Action, raw, signature)
	if err != nil {
		log.Warn("failed to journal callback", zap.Error(err))
	}

	var res *platbox.SignedResult
	switch probe.Action {
	case "check":
		res = h.Gateway.CheckOrder(ctx, raw, signature)
	case "pay":
		res = h.Gateway.PayOrder(ctx, raw, signature)
	case "cancel":
		res = h.Gateway.CancelPayment(ctx, raw, signature)
	default:
		log.Warn("unknown callback action", zap.String("callback_action", probe.Action))
		h.markJournal(ctx, journalID, "error", strconv.Itoa(platbox.CodeTechnical))
		writeTechnicalError(w)
		return
	}

	h.markJournal(ctx, journalID, res.Status, res.Code)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(SignatureHeader, res.Signature)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Body)
}

// PaymentPage renders the hosted page embedding the payment frame.
func (h *Handler) PaymentPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	orderID := ps.ByName("order_id")

	o, err := h.Orders.Resolve(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.FromCtx(ctx).Error("failed to load order for payment page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	frame, err := h.Gateway.PaymentFrame(ctx, o)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to build payment frame", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, frame)
}

// ProcessCheckout runs the pre-payment side effects and hands back the
// redirect to the hosted payment page.
func (h *Handler) ProcessCheckout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	orderID := ps.ByName("order_id")

	result, err := h.Checkout.Process(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// Return sends the shopper back to the checkout page after the hosted
// flow finishes.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, h.CheckoutURL, http.StatusFound)
}

func (h *Handler) markJournal(ctx context.Context, journalID int64, status, code string) {
	if journalID == 0 {
		return
	}
	if err := h.Journal.MarkResult(ctx, journalID, status, code); err != nil {
		logger.FromCtx(ctx).Warn("failed to update callback journal", zap.Error(err))
	}
}

func writeTechnicalError(w http.ResponseWriter) {
	body, _ := json.Marshal(map[string]string{
		"code":        strconv.Itoa(platbox.CodeTechnical),
		"description": platbox.Description(platbox.CodeTechnical),
		"status":      "error",
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
