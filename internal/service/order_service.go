package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/cache"
	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/repository"
	"github.com/sun6bks/ticket-api/internal/utils"
	"github.com/sun6bks/ticket-api/pkg/midtrans"
)

const maxTicketsPerOrder = 10

// CreateOrderRequest carries a new purchase attempt.
type CreateOrderRequest struct {
	EventID       int    `json:"eventId" binding:"required"`
	CategoryID    int    `json:"categoryId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1,max=10"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone"`
}

// OrderService creates orders and serves their public status view.
type OrderService struct {
	transactions *repository.TransactionRepository
	categories   *repository.CategoryRepository
	stocks       *repository.StockRepository
	tickets      *repository.TicketRepository
	snap         *midtrans.Client
	orderCache   *cache.OrderCache
	appURL       string
}

// NewOrderService creates an OrderService. orderCache may be nil when Redis
// is not configured.
func NewOrderService(
	transactions *repository.TransactionRepository,
	categories *repository.CategoryRepository,
	stocks *repository.StockRepository,
	tickets *repository.TicketRepository,
	snap *midtrans.Client,
	orderCache *cache.OrderCache,
	appURL string,
) *OrderService {
	return &OrderService{
		transactions: transactions,
		categories:   categories,
		stocks:       stocks,
		tickets:      tickets,
		snap:         snap,
		orderCache:   orderCache,
		appURL:       appURL,
	}
}

// CreateOrder validates the event and category, opens a hosted checkout
// session at the gateway, and records the transaction in pending. Stock is
// only advisory-checked here; the authoritative decrement happens when the
// payment confirms.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Transaction, error) {
	if req.Quantity < 1 || req.Quantity > maxTicketsPerOrder {
		return nil, fmt.Errorf("quantity must be between 1 and %d", maxTicketsPerOrder)
	}

	event, err := s.categories.GetEventByID(req.EventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrEventNotFound
		}
		return nil, err
	}
	if !event.IsPublished {
		return nil, utils.ErrEventNotPublished
	}

	category, err := s.categories.GetByID(req.CategoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	if category.EventID != event.ID {
		return nil, utils.ErrCategoryMismatch
	}
	if !category.IsActive {
		return nil, utils.ErrCategoryInactive
	}

	stock, err := s.stocks.GetByCategoryID(category.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	if stock.RemainingStock < req.Quantity {
		return nil, utils.ErrInsufficientStock
	}

	orderID, err := utils.GenerateOrderID(event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	amount := category.Price * int64(req.Quantity)

	snapReq := &midtrans.SnapRequest{
		ItemDetails: []midtrans.SnapItem{{
			ID:       fmt.Sprintf("CAT-%d", category.ID),
			Price:    category.Price,
			Quantity: req.Quantity,
			Name:     fmt.Sprintf("%s - %s", event.Title, category.Name),
			Category: "ticket",
		}},
		CustomerDetails: midtrans.SnapCustomer{
			FirstName: req.CustomerName,
			Email:     req.CustomerEmail,
			Phone:     req.CustomerPhone,
		},
		Expiry: &midtrans.SnapExpiry{Unit: "hour", Duration: 24},
	}
	snapReq.TransactionDetails.OrderID = orderID
	snapReq.TransactionDetails.GrossAmount = amount
	snapReq.Callbacks.Finish = fmt.Sprintf("%s/orders/%s", s.appURL, orderID)

	snapResp, err := s.snap.CreateSnapTransaction(ctx, snapReq)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("Failed to create checkout session")
		return nil, utils.ErrGatewayUnavailable
	}

	trx := &models.Transaction{
		OrderID:         orderID,
		EventID:         event.ID,
		CategoryID:      category.ID,
		Quantity:        req.Quantity,
		Amount:          amount,
		Status:          models.StatusPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SnapToken:       &snapResp.Token,
		SnapRedirectURL: &snapResp.RedirectURL,
	}
	if err := s.transactions.Create(trx); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	log.Info().
		Str("order_id", orderID).
		Int("event_id", event.ID).
		Int("quantity", req.Quantity).
		Int64("amount", amount).
		Msg("Order created")
	return trx, nil
}

// GetOrder returns the public view of an order. The confirmation page polls
// this while waiting for the webhook, so reads go through the short-lived
// snapshot cache.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*cache.OrderSnapshot, error) {
	if s.orderCache != nil {
		snap, err := s.orderCache.Get(ctx, orderID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", orderID).Msg("Order snapshot read failed")
		} else if snap != nil {
			return snap, nil
		}
	}

	trx, err := s.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrTransactionNotFound
		}
		return nil, err
	}

	snap := &cache.OrderSnapshot{
		OrderID:       trx.OrderID,
		Status:        string(trx.Status),
		Amount:        trx.Amount,
		Quantity:      trx.Quantity,
		CustomerName:  trx.CustomerName,
		CustomerEmail: trx.CustomerEmail,
	}
	if trx.PaidAt != nil {
		snap.PaidAt = timePtr(*trx.PaidAt)
	}
	if trx.ExpiredAt != nil {
		snap.ExpiredAt = timePtr(*trx.ExpiredAt)
	}

	if event, err := s.categories.GetEventByID(trx.EventID); err == nil {
		snap.EventTitle = event.Title
	}
	if category, err := s.categories.GetByID(trx.CategoryID); err == nil {
		snap.CategoryName = category.Name
	}

	if trx.Status == models.StatusPaid {
		tickets, err := s.tickets.ListByTransactionID(trx.ID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", orderID).Msg("Failed to list tickets for snapshot")
		}
		for _, t := range tickets {
			if t.Status == models.TicketActive {
				snap.Tickets = append(snap.Tickets, t.TicketCode)
			}
		}
	}

	if s.orderCache != nil {
		if err := s.orderCache.Set(ctx, snap); err != nil {
			log.Warn().Err(err).Str("order_id", orderID).Msg("Order snapshot write failed")
		}
	}
	return snap, nil
}

func timePtr(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}
