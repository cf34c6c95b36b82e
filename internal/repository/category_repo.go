package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sun6bks/ticket-api/internal/models"
)

// CategoryRepository handles data access for events and ticket categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetEventByID returns an event by id.
func (r *CategoryRepository) GetEventByID(id int) (*models.Event, error) {
	const q = `SELECT * FROM events WHERE id = $1 LIMIT 1`
	var e models.Event
	if err := r.db.Get(&e, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &e, nil
}

// GetByID returns a ticket category by id.
func (r *CategoryRepository) GetByID(id int) (*models.TicketCategory, error) {
	const q = `SELECT * FROM ticket_categories WHERE id = $1 LIMIT 1`
	var c models.TicketCategory
	if err := r.db.Get(&c, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}
