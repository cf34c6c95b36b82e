package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sun6bks/ticket-api/internal/models"
)

// TicketRepository handles data access for issued tickets.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// InsertBatch persists a batch of active tickets for a transaction in a
// single statement.
func (r *TicketRepository) InsertBatch(transactionID int, codes []string) error {
	const q = `
        INSERT INTO tickets (transaction_id, ticket_code, status, activated_at, created_at)
        SELECT $1, code, 'active', NOW(), NOW()
        FROM unnest($2::text[]) AS code`
	_, err := r.db.Exec(q, transactionID, pq.Array(codes))
	return err
}

// CancelByTransactionID flips every non-cancelled ticket of a transaction to
// cancelled and returns how many rows changed. Tickets are never deleted.
func (r *TicketRepository) CancelByTransactionID(transactionID int) (int, error) {
	const q = `
        UPDATE tickets SET status = 'cancelled'
        WHERE transaction_id = $1 AND status <> 'cancelled'`
	res, err := r.db.Exec(q, transactionID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ListByTransactionID returns all tickets of a transaction.
func (r *TicketRepository) ListByTransactionID(transactionID int) ([]models.Ticket, error) {
	const q = `SELECT * FROM tickets WHERE transaction_id = $1 ORDER BY id ASC`
	var list []models.Ticket
	if err := r.db.Select(&list, q, transactionID); err != nil {
		return nil, err
	}
	return list, nil
}

// CountByTransactionID returns the number of tickets issued for a transaction.
func (r *TicketRepository) CountByTransactionID(transactionID int) (int, error) {
	const q = `SELECT COUNT(*) FROM tickets WHERE transaction_id = $1`
	var n int
	if err := r.db.Get(&n, q, transactionID); err != nil {
		return 0, err
	}
	return n, nil
}
