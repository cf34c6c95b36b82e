package models

import "time"

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket is one admission credential. Exactly quantity tickets exist per paid
// transaction; cancellation flips status, rows are never deleted.
type Ticket struct {
	ID            int          `db:"id" json:"-"`
	TransactionID int          `db:"transaction_id" json:"-"`
	TicketCode    string       `db:"ticket_code" json:"ticketCode"`
	Status        TicketStatus `db:"status" json:"status"`
	ActivatedAt   *time.Time   `db:"activated_at" json:"activatedAt,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
}

// TicketStock is the per-category inventory counter. remaining_stock moves
// only through the atomic decrement/restore statements in the stock
// repository; 0 <= remaining_stock <= total_stock always holds.
type TicketStock struct {
	ID             int       `db:"id"`
	CategoryID     int       `db:"category_id"`
	TotalStock     int       `db:"total_stock"`
	RemainingStock int       `db:"remaining_stock"`
	UpdatedAt      time.Time `db:"updated_at"`
}
