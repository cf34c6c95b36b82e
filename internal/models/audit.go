package models

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by the reconciliation pipeline.
const (
	AuditActionRecheck        = "re_check"
	AuditActionManualOverride = "manual_override"
	AuditActionWebhook        = "webhook"
	AuditActionSweep          = "sweep"
)

// AuditLog is an immutable record of a status change. Rows are append-only;
// there is no update or delete path anywhere in the codebase.
type AuditLog struct {
	ID            int               `db:"id" json:"-"`
	ActorID       string            `db:"actor_id" json:"actorId"`
	ActorEmail    string            `db:"actor_email" json:"actorEmail"`
	TransactionID int               `db:"transaction_id" json:"-"`
	Action        string            `db:"action" json:"action"`
	OldStatus     TransactionStatus `db:"old_status" json:"oldStatus"`
	NewStatus     TransactionStatus `db:"new_status" json:"newStatus"`
	Reason        string            `db:"reason" json:"reason"`
	Metadata      json.RawMessage   `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
}
