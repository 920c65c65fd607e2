package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// Statuses mirror the shop's order lifecycle. The gateway only ever
// reads these and requests transitions; it never invents new ones.
const (
	StatusPending    OrderStatus = "pending"
	StatusOnHold     OrderStatus = "on-hold"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
	StatusUnknown    OrderStatus = "unknown"
)

type Order struct {
	ID        string
	UserID    int64
	Currency  string
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoticeSeverity string

const (
	NoticeError   NoticeSeverity = "error"
	NoticeSuccess NoticeSeverity = "success"
)
