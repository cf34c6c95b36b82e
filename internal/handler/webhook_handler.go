package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/pkg/midtrans"
)

// WebhookHandler handles inbound payment gateway notifications.
//
// Midtrans retries any non-200 answer, so every branch here ends in 200; the
// disposition field tells operators (and the gateway dashboard) what the
// engine did with the delivery.
type WebhookHandler struct {
	reconciler *service.ReconcileService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(reconciler *service.ReconcileService) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler}
}

// HandleNotification handles POST /v1/webhooks/midtrans
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warn().Err(err).Msg("Webhook: unreadable body")
		c.JSON(200, gin.H{"received": true, "disposition": "unreadable_body"})
		return
	}

	var n midtrans.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		log.Warn().Err(err).Msg("Webhook: malformed JSON payload")
		c.JSON(200, gin.H{"received": true, "disposition": "malformed_payload"})
		return
	}

	res := h.reconciler.ProcessNotification(c.Request.Context(), body, &n)
	c.JSON(200, gin.H{"received": true, "disposition": string(res.Outcome)})
}
