package handler

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/repository"
	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// AdminTransactionHandler handles the admin transaction surface: listing,
// stats, detail, manual re-check, and status override.
type AdminTransactionHandler struct {
	transactions *repository.TransactionRepository
	tickets      *repository.TicketRepository
	audits       *repository.AuditRepository
	reconciler   *service.ReconcileService
}

// NewAdminTransactionHandler constructs an AdminTransactionHandler.
func NewAdminTransactionHandler(
	transactions *repository.TransactionRepository,
	tickets *repository.TicketRepository,
	audits *repository.AuditRepository,
	reconciler *service.ReconcileService,
) *AdminTransactionHandler {
	return &AdminTransactionHandler{
		transactions: transactions,
		tickets:      tickets,
		audits:       audits,
		reconciler:   reconciler,
	}
}

// ListTransactions handles GET /v1/admin/transactions
func (h *AdminTransactionHandler) ListTransactions(c *gin.Context) {
	var filter repository.AdminTransactionFilter

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if eventID := c.Query("eventId"); eventID != "" {
		if id, err := strconv.Atoi(eventID); err == nil {
			filter.EventID = &id
		}
	}
	if orderID := c.Query("orderId"); orderID != "" {
		filter.OrderID = &orderID
	}
	if email := c.Query("customerEmail"); email != "" {
		filter.CustomerEmail = &email
	}
	if startDate := c.Query("startDate"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := c.Query("endDate"); endDate != "" {
		filter.EndDate = &endDate
	}

	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	result, err := h.transactions.GetAllAdmin(&filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve transactions")
		return
	}

	utils.SuccessWithPagination(c, 200, "Transactions retrieved",
		result.Transactions, result.Page, result.Limit, result.TotalItems)
}

// GetStats handles GET /v1/admin/transactions/stats
func (h *AdminTransactionHandler) GetStats(c *gin.Context) {
	stats, err := h.transactions.GetAdminStats()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve statistics")
		return
	}
	utils.Success(c, 200, "Statistics retrieved", stats)
}

// GetTransaction handles GET /v1/admin/transactions/:orderId
func (h *AdminTransactionHandler) GetTransaction(c *gin.Context) {
	orderID := c.Param("orderId")

	trx, err := h.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Transaction not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve transaction")
		return
	}

	tickets, err := h.tickets.ListByTransactionID(trx.ID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve tickets")
		return
	}

	utils.Success(c, 200, "Transaction retrieved", gin.H{
		"transaction": trx,
		"tickets":     tickets,
	})
}

// GetAuditLogs handles GET /v1/admin/transactions/:orderId/audit-logs
func (h *AdminTransactionHandler) GetAuditLogs(c *gin.Context) {
	orderID := c.Param("orderId")

	trx, err := h.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Transaction not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve transaction")
		return
	}

	logs, err := h.audits.ListByTransactionID(trx.ID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve audit logs")
		return
	}

	utils.Success(c, 200, "Audit logs retrieved", logs)
}

// RecheckTransaction handles POST /v1/admin/transactions/:orderId/recheck
func (h *AdminTransactionHandler) RecheckTransaction(c *gin.Context) {
	orderID := c.Param("orderId")
	actor := actorFromContext(c)

	res, err := h.reconciler.Recheck(c.Request.Context(), orderID, &actor)
	if err != nil {
		switch err {
		case utils.ErrTransactionNotFound:
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Transaction not found")
		case utils.ErrGatewayUnavailable:
			utils.Error(c, 502, "GATEWAY_UNAVAILABLE", "Payment gateway is unavailable")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Re-check failed")
		}
		return
	}

	utils.Success(c, 200, "Transaction re-checked", gin.H{
		"orderId":   res.OrderID,
		"oldStatus": res.OldStatus,
		"newStatus": res.NewStatus,
		"changed":   res.Outcome == service.OutcomeApplied,
	})
}

type overrideRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// OverrideTransaction handles POST /v1/admin/transactions/:orderId/override
func (h *AdminTransactionHandler) OverrideTransaction(c *gin.Context) {
	orderID := c.Param("orderId")
	actor := actorFromContext(c)

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Status and reason are required")
		return
	}

	next := models.TransactionStatus(req.Status)
	switch next {
	case models.StatusPending, models.StatusPaid, models.StatusExpired, models.StatusFailed, models.StatusRefunded:
	default:
		utils.Error(c, 400, "INVALID_STATUS", "Unknown target status")
		return
	}

	res, err := h.reconciler.Override(c.Request.Context(), orderID, next, actor, req.Reason)
	if err != nil {
		switch err {
		case utils.ErrTransactionNotFound:
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Transaction not found")
		case utils.ErrReasonTooShort:
			utils.Error(c, 422, "REASON_TOO_SHORT", "Justification must be at least 10 characters")
		case utils.ErrAlreadyPaid:
			utils.Error(c, 409, "ALREADY_PAID", "Transaction is already paid")
		case utils.ErrInvalidTransition:
			utils.Error(c, 422, "INVALID_TRANSITION", "Transition is not allowed from the current status")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Override failed")
		}
		return
	}

	utils.Success(c, 200, "Transaction overridden", gin.H{
		"orderId":   res.OrderID,
		"oldStatus": res.OldStatus,
		"newStatus": res.NewStatus,
		"changed":   res.Outcome == service.OutcomeApplied,
	})
}

// actorFromContext builds the audit actor from the JWT claims the middleware
// stored on the request.
func actorFromContext(c *gin.Context) service.Actor {
	return service.Actor{
		ID:    "admin:" + strconv.Itoa(c.GetInt("admin_id")),
		Email: c.GetString("admin_email"),
	}
}
