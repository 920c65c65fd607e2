package platbox

import (
	"context"
	"time"

	"platbox-gateway/internal/order"
)

// Hosted payment frame endpoints.
const (
	ProductionURL = "https://paybox-global.platbox.com/paybox"
	SandboxURL    = "https://playground.platbox.com/paybox"
)

// Credentials configure a single gateway instance. OpenKey doubles as the
// merchant id on the wire.
type Credentials struct {
	OpenKey     string
	SecretKey   string
	ProjectName string
	Production  bool
}

// Gateway builds outbound payment-frame requests and reconciles inbound
// processor callbacks against the shop's orders.
type Gateway interface {
	PaymentFrameURL(ctx context.Context, o *order.Order) (string, error)
	PaymentFrame(ctx context.Context, o *order.Order) (string, error)
	CheckOrder(ctx context.Context, rawBody []byte, signature string) *SignedResult
	PayOrder(ctx context.Context, rawBody []byte, signature string) *SignedResult
	CancelPayment(ctx context.Context, rawBody []byte, signature string) *SignedResult
}

type gateway struct {
	creds  Credentials
	orders order.Service
	now    func() time.Time
}

func NewGateway(creds Credentials, orders order.Service) Gateway {
	return &gateway{
		creds:  creds,
		orders: orders,
		now:    time.Now,
	}
}
