package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// OrderHandler handles the public order endpoints.
type OrderHandler struct {
	orderSvc   *service.OrderService
	reconciler *service.ReconcileService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService, reconciler *service.ReconcileService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, reconciler: reconciler}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	trx, err := h.orderSvc.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case utils.ErrEventNotFound:
			utils.Error(c, 404, "EVENT_NOT_FOUND", "Event not found")
		case utils.ErrEventNotPublished:
			utils.Error(c, 422, "EVENT_NOT_PUBLISHED", "Event is not open for sale")
		case utils.ErrCategoryNotFound:
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Ticket category not found")
		case utils.ErrCategoryInactive:
			utils.Error(c, 422, "CATEGORY_INACTIVE", "Ticket category is not on sale")
		case utils.ErrCategoryMismatch:
			utils.Error(c, 422, "CATEGORY_MISMATCH", "Ticket category does not belong to this event")
		case utils.ErrInsufficientStock:
			utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough tickets remaining")
		case utils.ErrGatewayUnavailable:
			utils.Error(c, 502, "GATEWAY_UNAVAILABLE", "Payment gateway is unavailable, please retry")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create order")
		}
		return
	}

	utils.Success(c, 201, "Order created", gin.H{
		"orderId":     trx.OrderID,
		"amount":      trx.Amount,
		"quantity":    trx.Quantity,
		"status":      trx.Status,
		"snapToken":   trx.SnapToken,
		"redirectUrl": trx.SnapRedirectURL,
	})
}

// GetOrder handles GET /v1/orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.Error(c, 400, "INVALID_ORDER_ID", "Order ID is required")
		return
	}

	snap, err := h.orderSvc.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if err == utils.ErrTransactionNotFound {
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Order not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve order")
		return
	}

	utils.Success(c, 200, "Order retrieved", snap)
}

// RecheckOrder handles POST /v1/orders/:orderId/recheck
//
// Customers stuck on the confirmation page can force a status pull instead of
// waiting for the webhook or the sweep.
func (h *OrderHandler) RecheckOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.Error(c, 400, "INVALID_ORDER_ID", "Order ID is required")
		return
	}

	res, err := h.reconciler.Recheck(c.Request.Context(), orderID, nil)
	if err != nil {
		switch err {
		case utils.ErrTransactionNotFound:
			utils.Error(c, 404, "TRANSACTION_NOT_FOUND", "Order not found")
		case utils.ErrGatewayUnavailable:
			utils.Error(c, 502, "GATEWAY_UNAVAILABLE", "Payment gateway is unavailable, please retry")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to re-check order")
		}
		return
	}

	utils.Success(c, 200, "Order re-checked", gin.H{
		"orderId":   res.OrderID,
		"oldStatus": res.OldStatus,
		"newStatus": res.NewStatus,
		"changed":   res.Outcome == service.OutcomeApplied,
	})
}
