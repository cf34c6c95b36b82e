package models

import (
	"time"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusPaid     TransactionStatus = "paid"
	StatusExpired  TransactionStatus = "expired"
	StatusFailed   TransactionStatus = "failed"
	StatusRefunded TransactionStatus = "refunded"
)

// Transaction captures one purchase attempt. A row is created in pending
// before any gateway confirmation and is only ever mutated by the
// reconciliation pipeline. Rows are never deleted.
type Transaction struct {
	ID              int               `db:"id" json:"-"`
	OrderID         string            `db:"order_id" json:"orderId"`
	EventID         int               `db:"event_id" json:"-"`
	CategoryID      int               `db:"category_id" json:"-"`
	Quantity        int               `db:"quantity" json:"quantity"`
	Amount          int64             `db:"amount" json:"amount"`
	Status          TransactionStatus `db:"status" json:"status"`
	CustomerName    string            `db:"customer_name" json:"customerName"`
	CustomerEmail   string            `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string            `db:"customer_phone" json:"customerPhone"`
	PaymentType     *string           `db:"payment_type" json:"paymentType,omitempty"`
	FraudStatus     *string           `db:"fraud_status" json:"-"`
	SnapToken       *string           `db:"snap_token" json:"-"`
	SnapRedirectURL *string           `db:"snap_redirect_url" json:"-"`
	PaidAt          *time.Time        `db:"paid_at" json:"paidAt,omitempty"`
	ExpiredAt       *time.Time        `db:"expired_at" json:"expiredAt,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"-"`
}

// IsTerminal reports whether no further transition is allowed from the
// status, except the single paid -> refunded edge.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusExpired, StatusFailed, StatusRefunded:
		return true
	}
	return false
}
