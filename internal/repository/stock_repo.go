package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// StockRepository handles the per-category inventory counters. Both mutations
// are single atomic statements; the read-modify-write never happens in
// application code because two different transactions may legitimately hit
// the same category concurrently.
type StockRepository struct {
	db *sqlx.DB
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(db *sqlx.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetByCategoryID returns the stock row for a category.
func (r *StockRepository) GetByCategoryID(categoryID int) (*models.TicketStock, error) {
	const q = `SELECT * FROM ticket_stocks WHERE category_id = $1 LIMIT 1`
	var s models.TicketStock
	if err := r.db.Get(&s, q, categoryID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &s, nil
}

// Decrement atomically reduces remaining_stock by quantity. The guard clause
// makes the statement a no-op when stock is insufficient, in which case
// utils.ErrInsufficientStock is returned.
func (r *StockRepository) Decrement(categoryID, quantity int) error {
	const q = `
        UPDATE ticket_stocks
        SET remaining_stock = remaining_stock - $2, updated_at = NOW()
        WHERE category_id = $1 AND remaining_stock >= $2`

	res, err := r.db.Exec(q, categoryID, quantity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrInsufficientStock
	}
	return nil
}

// Restore atomically returns quantity units to remaining_stock, bounded by
// total_stock. Used when tickets are cancelled on refund.
func (r *StockRepository) Restore(categoryID, quantity int) error {
	const q = `
        UPDATE ticket_stocks
        SET remaining_stock = LEAST(total_stock, remaining_stock + $2), updated_at = NOW()
        WHERE category_id = $1`
	_, err := r.db.Exec(q, categoryID, quantity)
	return err
}
