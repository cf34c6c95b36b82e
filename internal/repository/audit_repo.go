package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/sun6bks/ticket-api/internal/models"
)

// AuditRepository appends to the immutable audit trail. There is
// intentionally no update or delete method.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts a new audit entry.
func (r *AuditRepository) Append(entry *models.AuditLog) error {
	const q = `
        INSERT INTO audit_logs (
            actor_id, actor_email, transaction_id, action,
            old_status, new_status, reason, metadata, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
        RETURNING id, created_at`

	var metadata interface{}
	if len(entry.Metadata) > 0 {
		metadata = []byte(entry.Metadata)
	}

	return r.db.QueryRow(q,
		entry.ActorID, entry.ActorEmail, entry.TransactionID, entry.Action,
		entry.OldStatus, entry.NewStatus, entry.Reason, metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByTransactionID returns the audit trail of a transaction, newest first.
func (r *AuditRepository) ListByTransactionID(transactionID int) ([]models.AuditLog, error) {
	const q = `SELECT * FROM audit_logs WHERE transaction_id = $1 ORDER BY created_at DESC`
	var list []models.AuditLog
	if err := r.db.Select(&list, q, transactionID); err != nil {
		return nil, err
	}
	return list, nil
}
