package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/config"
	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/utils"
	"github.com/sun6bks/ticket-api/pkg/midtrans"
)

// Trigger identifies which entry point asked for a reconciliation.
type Trigger string

const (
	TriggerWebhook  Trigger = "webhook"
	TriggerRecheck  Trigger = "re_check"
	TriggerSweep    Trigger = "sweep"
	TriggerOverride Trigger = "manual_override"
)

// Outcome classifies what one reconciliation attempt did. The webhook handler
// returns it to the gateway purely for diagnostics; it never maps to a non-200
// response code.
type Outcome string

const (
	// OutcomeApplied means the status moved and side effects ran.
	OutcomeApplied Outcome = "ok"
	// OutcomeNoTransition means the incoming status is the same as the stored
	// one (idempotent redelivery) or an illegal backward move; nothing changed.
	OutcomeNoTransition Outcome = "no_transition"
	// OutcomeAlreadyProcessed means a concurrent writer moved the row first;
	// this attempt ran no side effects.
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeInvalidSignature Outcome = "invalid_signature"
	OutcomeNotFound         Outcome = "transaction_not_found"
	OutcomeError            Outcome = "error"
)

// Actor identifies who requested a manual reconciliation.
type Actor struct {
	ID    string
	Email string
}

// Result reports one reconciliation attempt.
type Result struct {
	Outcome   Outcome
	OrderID   string
	OldStatus models.TransactionStatus
	NewStatus models.TransactionStatus
}

// SweepStats summarizes one sweep run over stale pending transactions.
type SweepStats struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// TransactionStore is the transaction persistence the pipeline depends on.
type TransactionStore interface {
	GetByOrderID(orderID string) (*models.Transaction, error)
	UpdateStatusIf(orderID string, expected, next models.TransactionStatus) (bool, error)
	UpdateGatewayDetails(orderID string, paymentType, fraudStatus *string) error
	GetStalePending(olderThan time.Duration, limit int) ([]models.Transaction, error)
}

// StockLedger mutates per-category inventory counters.
type StockLedger interface {
	Decrement(categoryID, quantity int) error
	Restore(categoryID, quantity int) error
}

// TicketStore persists issued tickets.
type TicketStore interface {
	InsertBatch(transactionID int, codes []string) error
	CancelByTransactionID(transactionID int) (int, error)
}

// AuditStore appends immutable audit entries.
type AuditStore interface {
	Append(entry *models.AuditLog) error
}

// ReceiptStore archives raw webhook payloads.
type ReceiptStore interface {
	Insert(receipt *models.WebhookReceipt) error
	MarkProcessed(id int64) error
}

// Gateway is the subset of the payment gateway client the pipeline uses.
type Gateway interface {
	VerifyNotification(n *midtrans.Notification) bool
	TransactionStatus(ctx context.Context, orderID string) (*midtrans.StatusResponse, error)
}

// SnapshotCache invalidates cached order views after a status move.
type SnapshotCache interface {
	Invalidate(ctx context.Context, orderID string) error
}

// StatusPublisher streams applied transitions to downstream consumers.
type StatusPublisher interface {
	PublishStatusChanged(trx *models.Transaction, oldStatus, newStatus models.TransactionStatus, trigger string)
}

// ReconcileService drives every status transition in the system. All four
// entry points (webhook, manual recheck, sweep, admin override) converge on
// the same apply path, so the transition rules and side effects cannot drift
// between them.
type ReconcileService struct {
	transactions TransactionStore
	stocks       StockLedger
	tickets      TicketStore
	audits       AuditStore
	receipts     ReceiptStore
	gateway      Gateway
	cache        SnapshotCache
	publisher    StatusPublisher
	workerCfg    config.WorkerConfig
}

// NewReconcileService wires the reconciliation pipeline. cache and publisher
// may be nil when Redis or Kafka are not configured.
func NewReconcileService(
	transactions TransactionStore,
	stocks StockLedger,
	tickets TicketStore,
	audits AuditStore,
	receipts ReceiptStore,
	gateway Gateway,
	cache SnapshotCache,
	publisher StatusPublisher,
	workerCfg config.WorkerConfig,
) *ReconcileService {
	return &ReconcileService{
		transactions: transactions,
		stocks:       stocks,
		tickets:      tickets,
		audits:       audits,
		receipts:     receipts,
		gateway:      gateway,
		cache:        cache,
		publisher:    publisher,
		workerCfg:    workerCfg,
	}
}

// ProcessNotification handles one inbound webhook payload. The raw body is
// archived before the signature gate so forged or malformed deliveries are
// kept for forensics. The returned Result is informational only; callers
// always answer the gateway with HTTP 200.
func (s *ReconcileService) ProcessNotification(ctx context.Context, raw []byte, n *midtrans.Notification) Result {
	valid := s.gateway.VerifyNotification(n)

	receipt := &models.WebhookReceipt{
		OrderID:        n.OrderID,
		Payload:        json.RawMessage(raw),
		SignatureValid: valid,
	}
	if err := s.receipts.Insert(receipt); err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Msg("Failed to archive webhook receipt")
	}

	if !valid {
		log.Warn().
			Str("order_id", n.OrderID).
			Str("transaction_status", n.TransactionStatus).
			Msg("Webhook rejected: signature mismatch")
		return Result{Outcome: OutcomeInvalidSignature, OrderID: n.OrderID}
	}

	if !models.IsKnownGatewayStatus(n.TransactionStatus) {
		log.Warn().
			Str("order_id", n.OrderID).
			Str("transaction_status", n.TransactionStatus).
			Msg("Unknown gateway status, treating as pending")
	}

	res := s.reconcile(ctx, n.OrderID, models.MapGatewayStatus(n.TransactionStatus, n.FraudStatus),
		gatewayDetails{paymentType: n.PaymentType, fraudStatus: n.FraudStatus},
		TriggerWebhook, nil, fmt.Sprintf("gateway notification: %s", n.TransactionStatus))

	if receipt.ID != 0 && (res.Outcome == OutcomeApplied || res.Outcome == OutcomeNoTransition) {
		if err := s.receipts.MarkProcessed(receipt.ID); err != nil {
			log.Error().Err(err).Int64("receipt_id", receipt.ID).Msg("Failed to mark webhook receipt processed")
		}
	}
	return res
}

// Recheck pulls the authoritative status from the gateway and reconciles the
// local row against it. actor is nil for the public endpoint and set for the
// admin one; manual rechecks are always audited, even when nothing changed.
func (s *ReconcileService) Recheck(ctx context.Context, orderID string, actor *Actor) (Result, error) {
	trx, err := s.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return Result{Outcome: OutcomeNotFound, OrderID: orderID}, utils.ErrTransactionNotFound
		}
		return Result{Outcome: OutcomeError, OrderID: orderID}, err
	}

	// Only pending can still move anywhere, and paid can move to refunded.
	// The other terminal states cannot change, so skip the gateway round trip.
	if trx.Status.IsTerminal() && trx.Status != models.StatusPaid {
		res := Result{Outcome: OutcomeNoTransition, OrderID: orderID, OldStatus: trx.Status, NewStatus: trx.Status}
		s.auditManual(trx, trx.Status, trx.Status, TriggerRecheck, actor, "re-check requested on terminal transaction")
		return res, nil
	}

	status, err := s.gateway.TransactionStatus(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("Gateway status query failed")
		return Result{Outcome: OutcomeError, OrderID: orderID}, utils.ErrGatewayUnavailable
	}

	if !models.IsKnownGatewayStatus(status.TransactionStatus) {
		log.Warn().
			Str("order_id", orderID).
			Str("transaction_status", status.TransactionStatus).
			Msg("Unknown gateway status on re-check, treating as pending")
	}

	res := s.reconcile(ctx, orderID, models.MapGatewayStatus(status.TransactionStatus, status.FraudStatus),
		gatewayDetails{paymentType: status.PaymentType, fraudStatus: status.FraudStatus},
		TriggerRecheck, actor, fmt.Sprintf("re-check: gateway reported %s", status.TransactionStatus))
	return res, nil
}

// Override moves a transaction to an explicit status on admin authority. The
// justification must carry at least 10 characters after trimming, the
// transition graph still applies, and marking an already-paid transaction
// paid again is rejected so stock is never decremented twice for one order.
func (s *ReconcileService) Override(ctx context.Context, orderID string, next models.TransactionStatus, actor Actor, reason string) (Result, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < 10 {
		return Result{Outcome: OutcomeError, OrderID: orderID}, utils.ErrReasonTooShort
	}

	trx, err := s.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return Result{Outcome: OutcomeNotFound, OrderID: orderID}, utils.ErrTransactionNotFound
		}
		return Result{Outcome: OutcomeError, OrderID: orderID}, err
	}

	if trx.Status == models.StatusPaid && next == models.StatusPaid {
		return Result{Outcome: OutcomeNoTransition, OrderID: orderID, OldStatus: trx.Status, NewStatus: next}, utils.ErrAlreadyPaid
	}
	if !models.IsValidTransition(trx.Status, next) {
		return Result{Outcome: OutcomeNoTransition, OrderID: orderID, OldStatus: trx.Status, NewStatus: next}, utils.ErrInvalidTransition
	}

	res := s.reconcile(ctx, orderID, next, gatewayDetails{}, TriggerOverride, &actor, reason)
	return res, nil
}

// SweepOnce runs one batch of the stale-pending sweep: pending transactions
// older than the configured age, oldest first, capped at the batch size. Each
// gateway lookup gets its own timeout so one slow call cannot stall the batch,
// and a failing transaction never stops the rest.
func (s *ReconcileService) SweepOnce(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	stale, err := s.transactions.GetStalePending(s.workerCfg.PendingAge, s.workerCfg.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to list stale pending transactions: %w", err)
	}

	for i := range stale {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		trx := &stale[i]
		stats.Scanned++

		lookupCtx, cancel := context.WithTimeout(ctx, s.workerCfg.StatusTimeout)
		status, err := s.gateway.TransactionStatus(lookupCtx, trx.OrderID)
		cancel()

		var res Result
		switch {
		case errors.Is(err, midtrans.ErrNotFound):
			// The customer never opened checkout, so the gateway has no
			// record. The order is older than the pending age threshold and
			// can never be paid; expire it.
			res = s.reconcile(ctx, trx.OrderID, models.StatusExpired, gatewayDetails{},
				TriggerSweep, nil, "sweep: order unknown at gateway")
		case err != nil:
			// Transient gateway trouble; the row stays pending and the next
			// run retries it.
			log.Warn().Err(err).Str("order_id", trx.OrderID).Msg("Sweep: gateway status query failed")
			stats.Errors++
			continue
		default:
			res = s.reconcile(ctx, trx.OrderID,
				models.MapGatewayStatus(status.TransactionStatus, status.FraudStatus),
				gatewayDetails{paymentType: status.PaymentType, fraudStatus: status.FraudStatus},
				TriggerSweep, nil, fmt.Sprintf("sweep: gateway reported %s", status.TransactionStatus))
		}

		switch res.Outcome {
		case OutcomeApplied:
			stats.Updated++
		case OutcomeError:
			stats.Errors++
		}
	}

	return stats, nil
}

type gatewayDetails struct {
	paymentType string
	fraudStatus string
}

// reconcile is the single apply path. It validates the transition, performs
// the optimistic-locked status move, and runs side effects only when this
// call is the one that actually moved the row.
func (s *ReconcileService) reconcile(ctx context.Context, orderID string, next models.TransactionStatus, details gatewayDetails, trigger Trigger, actor *Actor, reason string) Result {
	trx, err := s.transactions.GetByOrderID(orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Warn().Str("order_id", orderID).Str("trigger", string(trigger)).Msg("Reconcile: unknown order")
			return Result{Outcome: OutcomeNotFound, OrderID: orderID}
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("Reconcile: failed to load transaction")
		return Result{Outcome: OutcomeError, OrderID: orderID}
	}

	if details.paymentType != "" || details.fraudStatus != "" {
		if err := s.transactions.UpdateGatewayDetails(orderID, nilIfEmpty(details.paymentType), nilIfEmpty(details.fraudStatus)); err != nil {
			log.Error().Err(err).Str("order_id", orderID).Msg("Failed to store gateway payment details")
		}
	}

	old := trx.Status
	res := Result{OrderID: orderID, OldStatus: old, NewStatus: next}

	if old == next {
		res.Outcome = OutcomeNoTransition
		log.Info().
			Str("order_id", orderID).
			Str("status", string(old)).
			Str("trigger", string(trigger)).
			Msg("Reconcile: redelivery of current status, nothing to do")
		s.auditManual(trx, old, next, trigger, actor, reason)
		return res
	}

	if !models.IsValidTransition(old, next) {
		res.Outcome = OutcomeNoTransition
		log.Warn().
			Str("order_id", orderID).
			Str("current", string(old)).
			Str("incoming", string(next)).
			Str("trigger", string(trigger)).
			Msg("Reconcile: transition not allowed, keeping current status")
		s.auditManual(trx, old, old, trigger, actor, reason)
		return res
	}

	applied, err := s.transactions.UpdateStatusIf(orderID, old, next)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("Reconcile: status update failed")
		res.Outcome = OutcomeError
		return res
	}
	if !applied {
		// Another entry point moved the row between our read and write. That
		// writer owns the side effects; this attempt must not repeat them.
		res.Outcome = OutcomeAlreadyProcessed
		log.Info().
			Str("order_id", orderID).
			Str("intended", string(next)).
			Str("trigger", string(trigger)).
			Msg("Reconcile: lost update race, no side effects run")
		return res
	}

	log.Info().
		Str("order_id", orderID).
		Str("old_status", string(old)).
		Str("new_status", string(next)).
		Str("trigger", string(trigger)).
		Msg("Transaction status updated")

	s.runSideEffects(trx, old, next)
	s.audit(trx, old, next, trigger, actor, reason)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, orderID); err != nil {
			log.Warn().Err(err).Str("order_id", orderID).Msg("Failed to invalidate order snapshot")
		}
	}
	if s.publisher != nil {
		s.publisher.PublishStatusChanged(trx, old, next, string(trigger))
	}

	res.Outcome = OutcomeApplied
	return res
}

// runSideEffects executes the inventory and ticket consequences of an applied
// transition. They run at most once per order because only the writer that
// won the conditional update reaches this point. Failures are logged for
// operator repair, never rolled back: the status row is the source of truth.
func (s *ReconcileService) runSideEffects(trx *models.Transaction, old, next models.TransactionStatus) {
	switch next {
	case models.StatusPaid:
		if err := s.stocks.Decrement(trx.CategoryID, trx.Quantity); err != nil {
			if err == utils.ErrInsufficientStock {
				log.Error().
					Str("order_id", trx.OrderID).
					Int("category_id", trx.CategoryID).
					Int("quantity", trx.Quantity).
					Msg("Paid transaction exceeds remaining stock, manual review required")
			} else {
				log.Error().Err(err).Str("order_id", trx.OrderID).Msg("Stock decrement failed")
			}
		}
		if err := s.issueTickets(trx); err != nil {
			log.Error().Err(err).Str("order_id", trx.OrderID).Msg("Ticket issuance failed")
		}

	case models.StatusExpired, models.StatusFailed, models.StatusRefunded:
		// From pending there are no tickets and stock was never taken, so
		// both calls are no-ops there. From paid (the refund edge) every
		// active ticket is cancelled and its unit returned.
		cancelled, err := s.tickets.CancelByTransactionID(trx.ID)
		if err != nil {
			log.Error().Err(err).Str("order_id", trx.OrderID).Msg("Ticket cancellation failed")
			return
		}
		if cancelled > 0 {
			log.Info().
				Str("order_id", trx.OrderID).
				Int("cancelled", cancelled).
				Msg("Tickets cancelled")
			if err := s.stocks.Restore(trx.CategoryID, cancelled); err != nil {
				log.Error().Err(err).Str("order_id", trx.OrderID).Msg("Stock restore failed")
			}
		}
	}
}

// issueTickets generates exactly quantity ticket codes and persists them in
// one batch.
func (s *ReconcileService) issueTickets(trx *models.Transaction) error {
	codes := make([]string, 0, trx.Quantity)
	for i := 0; i < trx.Quantity; i++ {
		code, err := utils.GenerateTicketCode()
		if err != nil {
			return fmt.Errorf("failed to generate ticket code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := s.tickets.InsertBatch(trx.ID, codes); err != nil {
		return fmt.Errorf("failed to persist tickets: %w", err)
	}
	log.Info().
		Str("order_id", trx.OrderID).
		Int("quantity", len(codes)).
		Msg("Tickets issued")
	return nil
}

// audit records an applied transition. Automated triggers are attributed to a
// system actor.
func (s *ReconcileService) audit(trx *models.Transaction, old, next models.TransactionStatus, trigger Trigger, actor *Actor, reason string) {
	entry := &models.AuditLog{
		ActorID:       "system:" + string(trigger),
		ActorEmail:    "",
		TransactionID: trx.ID,
		Action:        actionFor(trigger),
		OldStatus:     old,
		NewStatus:     next,
		Reason:        reason,
	}
	if actor != nil {
		entry.ActorID = actor.ID
		entry.ActorEmail = actor.Email
	}
	if err := s.audits.Append(entry); err != nil {
		log.Error().Err(err).Str("order_id", trx.OrderID).Msg("Failed to append audit log")
	}
}

// auditManual records an attempt that changed nothing, but only when a human
// asked for it. Automated redeliveries are far too frequent to audit.
func (s *ReconcileService) auditManual(trx *models.Transaction, old, next models.TransactionStatus, trigger Trigger, actor *Actor, reason string) {
	if actor == nil {
		return
	}
	s.audit(trx, old, next, trigger, actor, reason)
}

func actionFor(trigger Trigger) string {
	switch trigger {
	case TriggerRecheck:
		return models.AuditActionRecheck
	case TriggerOverride:
		return models.AuditActionManualOverride
	case TriggerSweep:
		return models.AuditActionSweep
	default:
		return models.AuditActionWebhook
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
