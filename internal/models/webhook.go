package models

import (
	"encoding/json"
	"time"
)

// WebhookReceipt stores one raw inbound gateway notification for forensic
// replay. Written before the signature gate so invalid payloads are kept too.
type WebhookReceipt struct {
	ID             int64           `db:"id"`
	OrderID        string          `db:"order_id"`
	Payload        json.RawMessage `db:"payload"`
	SignatureValid bool            `db:"signature_valid"`
	IsProcessed    bool            `db:"is_processed"`
	CreatedAt      time.Time       `db:"created_at"`
}
