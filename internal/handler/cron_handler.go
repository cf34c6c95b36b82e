package handler

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// CronHandler exposes the reconcile sweep to an external scheduler. Serverless
// deployments without a long-lived worker trigger it through this endpoint.
type CronHandler struct {
	reconciler *service.ReconcileService
	cronSecret string
}

// NewCronHandler constructs a CronHandler.
func NewCronHandler(reconciler *service.ReconcileService, cronSecret string) *CronHandler {
	return &CronHandler{reconciler: reconciler, cronSecret: cronSecret}
}

// RunSweep handles POST /v1/internal/cron/reconcile
func (h *CronHandler) RunSweep(c *gin.Context) {
	if h.cronSecret == "" {
		utils.Error(c, 403, "CRON_DISABLED", "Cron endpoint is not configured")
		return
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		utils.Error(c, 401, "UNAUTHORIZED", "Invalid cron secret")
		return
	}

	stats, err := h.reconciler.SweepOnce(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Cron sweep failed")
		utils.Error(c, 500, "SWEEP_FAILED", "Reconcile sweep failed")
		return
	}

	utils.Success(c, 200, "Sweep completed", stats)
}
