package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/sun6bks/ticket-api/internal/models"
)

// WebhookRepository stores raw inbound gateway payloads for forensic replay.
type WebhookRepository struct {
	db *sqlx.DB
}

// NewWebhookRepository creates a new WebhookRepository.
func NewWebhookRepository(db *sqlx.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

// Insert archives a raw notification. Called before the signature gate so
// tampered payloads are preserved too.
func (r *WebhookRepository) Insert(receipt *models.WebhookReceipt) error {
	const q = `
        INSERT INTO webhook_receipts (order_id, payload, signature_valid, is_processed, created_at)
        VALUES ($1,$2,$3,false,NOW())
        RETURNING id, created_at`
	return r.db.QueryRow(q, receipt.OrderID, []byte(receipt.Payload), receipt.SignatureValid).
		Scan(&receipt.ID, &receipt.CreatedAt)
}

// MarkProcessed flags a receipt as handled by the pipeline.
func (r *WebhookRepository) MarkProcessed(id int64) error {
	const q = `UPDATE webhook_receipts SET is_processed = true WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}
