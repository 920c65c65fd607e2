package platbox

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"time"

	"platbox-gateway/internal/order"

	"github.com/shopspring/decimal"
)

type frameItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count string `json:"count"`
}

type frameOrder struct {
	Type     string      `json:"type"`
	ItemList []frameItem `json:"item_list"`
}

var minorUnitsPerMajor = decimal.NewFromInt(100)

// PaymentFrameURL assembles the signed payment-initiation payload for an
// order and encodes it as a query string against the configured endpoint.
// No network call is made here, the processor pulls everything from the URL.
func (g *gateway) PaymentFrameURL(ctx context.Context, o *order.Order) (string, error) {
	account, err := json.Marshal(map[string]string{
		"id": strconv.FormatInt(o.UserID, 10),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode account: %w", err)
	}

	descriptor, err := json.Marshal(frameOrder{
		Type: "item_list",
		ItemList: []frameItem{
			{ID: o.ID, Name: o.ID, Count: "1"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode order descriptor: %w", err)
	}

	// Fixed x100 conversion regardless of the currency's real exponent.
	// Wrong for zero- and three-decimal currencies, kept for wire
	// compatibility with the processor's expectations.
	minor := o.Total.Mul(minorUnitsPerMajor).Round(0)

	data := map[string]string{
		"merchant_id":  g.creds.OpenKey,
		"account":      string(account),
		"amount":       minor.String(),
		"currency":     o.Currency,
		"order":        string(descriptor),
		"project":      g.creds.ProjectName,
		"comment":      "",
		"redirect_url": g.orders.ReturnURL(o),
		"additional":   "",
		"timestamp":    frameTimestamp(g.now()),
	}

	// Canonical form: encoding/json sorts map keys, the signature covers
	// exactly these bytes. The sign field is appended afterwards and is
	// never part of the signed payload.
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment request: %w", err)
	}
	data["sign"] = Sign(payload, g.creds.SecretKey)

	query := url.Values{}
	for k, v := range data {
		query.Set(k, v)
	}

	base := SandboxURL
	if g.creds.Production {
		base = ProductionURL
	}
	return base + "?" + query.Encode(), nil
}

// PaymentFrame wraps the signed URL in the embeddable iframe markup used
// on the hosted payment page.
func (g *gateway) PaymentFrame(ctx context.Context, o *order.Order) (string, error) {
	frameURL, err := g.PaymentFrameURL(ctx, o)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		`<iframe width="900" height="500" frameBorder="0" scrolling="no" src="%s"></iframe>`,
		html.EscapeString(frameURL),
	), nil
}

// frameTimestamp renders the request time as Unix seconds with a
// microsecond fraction.
func frameTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', 6, 64)
}
