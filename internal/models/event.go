package models

import "time"

// Event is a sellable happening. Only published events accept orders.
type Event struct {
	ID           int       `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Venue        string    `db:"venue" json:"venue"`
	Date         string    `db:"date" json:"date"`
	TimeLabel    string    `db:"time_label" json:"timeLabel"`
	IsPublished  bool      `db:"is_published" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// TicketCategory is one price tier of an event.
type TicketCategory struct {
	ID       int    `db:"id" json:"id"`
	EventID  int    `db:"event_id" json:"-"`
	Name     string `db:"name" json:"name"`
	Price    int64  `db:"price" json:"price"`
	IsActive bool   `db:"is_active" json:"-"`
}
