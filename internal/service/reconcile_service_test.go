package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sun6bks/ticket-api/internal/config"
	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/utils"
	"github.com/sun6bks/ticket-api/pkg/midtrans"
)

type fakeTransactionStore struct {
	mu           sync.Mutex
	rows         map[string]*models.Transaction
	stale        []models.Transaction
	beforeUpdate func()
}

func newFakeTransactionStore(rows ...*models.Transaction) *fakeTransactionStore {
	s := &fakeTransactionStore{rows: make(map[string]*models.Transaction)}
	for _, r := range rows {
		s.rows[r.OrderID] = r
	}
	return s
}

func (s *fakeTransactionStore) GetByOrderID(orderID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *row
	return &cp, nil
}

func (s *fakeTransactionStore) UpdateStatusIf(orderID string, expected, next models.TransactionStatus) (bool, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[orderID]
	if !ok || row.Status != expected {
		return false, nil
	}
	row.Status = next
	now := time.Now()
	if next == models.StatusPaid {
		row.PaidAt = &now
	}
	if next == models.StatusExpired {
		row.ExpiredAt = &now
	}
	return true, nil
}

func (s *fakeTransactionStore) UpdateGatewayDetails(orderID string, paymentType, fraudStatus *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[orderID]; ok {
		if paymentType != nil {
			row.PaymentType = paymentType
		}
		if fraudStatus != nil {
			row.FraudStatus = fraudStatus
		}
	}
	return nil
}

func (s *fakeTransactionStore) GetStalePending(olderThan time.Duration, limit int) ([]models.Transaction, error) {
	if len(s.stale) > limit {
		return s.stale[:limit], nil
	}
	return s.stale, nil
}

func (s *fakeTransactionStore) status(orderID string) models.TransactionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[orderID].Status
}

type fakeStockLedger struct {
	mu        sync.Mutex
	remaining map[int]int
	restored  map[int]int
}

func newFakeStockLedger(remaining map[int]int) *fakeStockLedger {
	return &fakeStockLedger{remaining: remaining, restored: make(map[int]int)}
}

func (l *fakeStockLedger) Decrement(categoryID, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.remaining[categoryID] < quantity {
		return utils.ErrInsufficientStock
	}
	l.remaining[categoryID] -= quantity
	return nil
}

func (l *fakeStockLedger) Restore(categoryID, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.remaining[categoryID] += quantity
	l.restored[categoryID] += quantity
	return nil
}

type fakeTicketStore struct {
	mu        sync.Mutex
	issued    map[int][]string
	cancelled map[int]int
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{issued: make(map[int][]string), cancelled: make(map[int]int)}
}

func (t *fakeTicketStore) InsertBatch(transactionID int, codes []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued[transactionID] = append(t.issued[transactionID], codes...)
	return nil
}

func (t *fakeTicketStore) CancelByTransactionID(transactionID int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.issued[transactionID]) - t.cancelled[transactionID]
	t.cancelled[transactionID] += n
	return n, nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (a *fakeAuditStore) Append(entry *models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *entry)
	return nil
}

type fakeReceiptStore struct {
	mu        sync.Mutex
	receipts  []models.WebhookReceipt
	processed []int64
	nextID    int64
}

func (r *fakeReceiptStore) Insert(receipt *models.WebhookReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	receipt.ID = r.nextID
	r.receipts = append(r.receipts, *receipt)
	return nil
}

func (r *fakeReceiptStore) MarkProcessed(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, id)
	return nil
}

type fakeGateway struct {
	mu          sync.Mutex
	valid       bool
	responses   map[string]*midtrans.StatusResponse
	errs        map[string]error
	statusCalls int
}

func (g *fakeGateway) VerifyNotification(n *midtrans.Notification) bool {
	return g.valid
}

func (g *fakeGateway) TransactionStatus(ctx context.Context, orderID string) (*midtrans.StatusResponse, error) {
	g.mu.Lock()
	g.statusCalls++
	g.mu.Unlock()
	if err, ok := g.errs[orderID]; ok {
		return nil, err
	}
	if resp, ok := g.responses[orderID]; ok {
		return resp, nil
	}
	return nil, midtrans.ErrNotFound
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *fakeCache) Invalidate(ctx context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, orderID)
	return nil
}

type publishedEvent struct {
	orderID   string
	oldStatus models.TransactionStatus
	newStatus models.TransactionStatus
	trigger   string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishStatusChanged(trx *models.Transaction, oldStatus, newStatus models.TransactionStatus, trigger string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{trx.OrderID, oldStatus, newStatus, trigger})
}

type fixture struct {
	svc       *ReconcileService
	store     *fakeTransactionStore
	stocks    *fakeStockLedger
	tickets   *fakeTicketStore
	audits    *fakeAuditStore
	receipts  *fakeReceiptStore
	gateway   *fakeGateway
	cache     *fakeCache
	publisher *fakePublisher
}

func newFixture(store *fakeTransactionStore, remaining map[int]int) *fixture {
	f := &fixture{
		store:     store,
		stocks:    newFakeStockLedger(remaining),
		tickets:   newFakeTicketStore(),
		audits:    &fakeAuditStore{},
		receipts:  &fakeReceiptStore{},
		gateway:   &fakeGateway{valid: true},
		cache:     &fakeCache{},
		publisher: &fakePublisher{},
	}
	f.svc = NewReconcileService(
		f.store, f.stocks, f.tickets, f.audits, f.receipts,
		f.gateway, f.cache, f.publisher,
		config.WorkerConfig{
			SweepInterval: 5 * time.Minute,
			PendingAge:    30 * time.Minute,
			BatchSize:     50,
			StatusTimeout: time.Second,
		},
	)
	return f
}

func pendingTransaction(id int, orderID string) *models.Transaction {
	return &models.Transaction{
		ID:         id,
		OrderID:    orderID,
		EventID:    1,
		CategoryID: 7,
		Quantity:   2,
		Amount:     300000,
		Status:     models.StatusPending,
	}
}

func notification(orderID, status, fraud string) (*midtrans.Notification, []byte) {
	n := &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: status,
		FraudStatus:       fraud,
		StatusCode:        "200",
		GrossAmount:       "300000.00",
		PaymentType:       "bank_transfer",
	}
	raw, _ := json.Marshal(n)
	return n, raw
}

func TestProcessNotification_SettlementPaysAndIssuesTickets(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})

	n, raw := notification("ORD-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StatusPending, res.OldStatus)
	assert.Equal(t, models.StatusPaid, res.NewStatus)
	assert.Equal(t, models.StatusPaid, f.store.status("ORD-1"))

	assert.Equal(t, 8, f.stocks.remaining[7], "stock decremented exactly once by quantity")
	assert.Len(t, f.tickets.issued[1], 2, "one ticket per quantity unit")

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, "system:webhook", f.audits.entries[0].ActorID)
	assert.Equal(t, models.AuditActionWebhook, f.audits.entries[0].Action)
	assert.Equal(t, models.StatusPending, f.audits.entries[0].OldStatus)
	assert.Equal(t, models.StatusPaid, f.audits.entries[0].NewStatus)

	require.Len(t, f.receipts.receipts, 1)
	assert.True(t, f.receipts.receipts[0].SignatureValid)
	assert.Equal(t, []int64{1}, f.receipts.processed)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, publishedEvent{"ORD-1", models.StatusPending, models.StatusPaid, "webhook"}, f.publisher.events[0])
	assert.Equal(t, []string{"ORD-1"}, f.cache.invalidated)
}

func TestProcessNotification_InvalidSignature(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})
	f.gateway.valid = false

	n, raw := notification("ORD-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeInvalidSignature, res.Outcome)
	assert.Equal(t, models.StatusPending, f.store.status("ORD-1"), "forged notification must not move status")
	assert.Empty(t, f.tickets.issued[1])
	assert.Equal(t, 10, f.stocks.remaining[7])

	require.Len(t, f.receipts.receipts, 1, "payload archived for forensics even when forged")
	assert.False(t, f.receipts.receipts[0].SignatureValid)
	assert.Empty(t, f.receipts.processed)
}

func TestProcessNotification_DuplicateDeliveryIsNoOp(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusPaid
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 8})

	n, raw := notification("ORD-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeNoTransition, res.Outcome)
	assert.Equal(t, models.StatusPaid, f.store.status("ORD-1"))
	assert.Empty(t, f.tickets.issued[1], "duplicate must not issue tickets again")
	assert.Equal(t, 8, f.stocks.remaining[7], "duplicate must not decrement stock again")
	assert.Empty(t, f.audits.entries, "automated redeliveries are not audited")
	assert.Equal(t, []int64{1}, f.receipts.processed)
}

func TestProcessNotification_StaleNotificationAfterTerminal(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusExpired
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 10})

	n, raw := notification("ORD-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeNoTransition, res.Outcome)
	assert.Equal(t, models.StatusExpired, f.store.status("ORD-1"), "terminal status must not move backward")
	assert.Empty(t, f.tickets.issued[1])
	assert.Equal(t, 10, f.stocks.remaining[7])
}

func TestProcessNotification_CaptureFraudMatrix(t *testing.T) {
	tests := []struct {
		fraud string
		want  models.TransactionStatus
	}{
		{"accept", models.StatusPaid},
		{"challenge", models.StatusPending},
		{"deny", models.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.fraud, func(t *testing.T) {
			f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})
			n, raw := notification("ORD-1", "capture", tt.fraud)
			f.svc.ProcessNotification(context.Background(), raw, n)
			assert.Equal(t, tt.want, f.store.status("ORD-1"))
		})
	}
}

func TestProcessNotification_LostRaceRunsNoSideEffects(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})

	// A concurrent writer moves the row between our read and the conditional
	// update.
	var once sync.Once
	f.store.beforeUpdate = func() {
		once.Do(func() {
			f.store.mu.Lock()
			f.store.rows["ORD-1"].Status = models.StatusPaid
			f.store.mu.Unlock()
		})
	}

	n, raw := notification("ORD-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeAlreadyProcessed, res.Outcome)
	assert.Empty(t, f.tickets.issued[1], "the loser of the race must not issue tickets")
	assert.Equal(t, 10, f.stocks.remaining[7], "the loser of the race must not touch stock")
	assert.Empty(t, f.audits.entries)
	assert.Empty(t, f.publisher.events)
}

func TestProcessNotification_UnknownGatewayStatus(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})

	n, raw := notification("ORD-1", "authorize", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	// Unknown vocabulary maps to pending; the row is already pending so the
	// delivery is a no-op rather than a failure.
	assert.Equal(t, OutcomeNoTransition, res.Outcome)
	assert.Equal(t, models.StatusPending, f.store.status("ORD-1"))
}

func TestProcessNotification_UnknownOrder(t *testing.T) {
	f := newFixture(newFakeTransactionStore(), map[int]int{})

	n, raw := notification("GHOST-1", "settlement", "")
	res := f.svc.ProcessNotification(context.Background(), raw, n)

	assert.Equal(t, OutcomeNotFound, res.Outcome)
	require.Len(t, f.receipts.receipts, 1, "unknown orders are still archived")
	assert.Empty(t, f.receipts.processed)
}

func TestRecheck_PendingMovesToGatewayStatus(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})
	f.gateway.responses = map[string]*midtrans.StatusResponse{
		"ORD-1": {OrderID: "ORD-1", TransactionStatus: "expire"},
	}

	actor := &Actor{ID: "admin:9", Email: "ops@sun6bks.com"}
	res, err := f.svc.Recheck(context.Background(), "ORD-1", actor)
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StatusExpired, f.store.status("ORD-1"))

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, "admin:9", f.audits.entries[0].ActorID)
	assert.Equal(t, models.AuditActionRecheck, f.audits.entries[0].Action)
}

func TestRecheck_TerminalSkipsGateway(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusFailed
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 10})

	actor := &Actor{ID: "admin:9", Email: "ops@sun6bks.com"}
	res, err := f.svc.Recheck(context.Background(), "ORD-1", actor)
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoTransition, res.Outcome)
	assert.Equal(t, 0, f.gateway.statusCalls, "failed/expired/refunded cannot move, no gateway call")
	require.Len(t, f.audits.entries, 1, "manual re-checks are audited even when nothing changed")
}

func TestRecheck_PaidStillQueriesForRefund(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusPaid
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 8})
	f.tickets.issued[1] = []string{"SUN6-AAAA-BBBB-CCCC", "SUN6-DDDD-EEEE-FFFF"}
	f.gateway.responses = map[string]*midtrans.StatusResponse{
		"ORD-1": {OrderID: "ORD-1", TransactionStatus: "refund"},
	}

	res, err := f.svc.Recheck(context.Background(), "ORD-1", nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StatusRefunded, f.store.status("ORD-1"))
	assert.Equal(t, 2, f.tickets.cancelled[1], "refund cancels every ticket")
	assert.Equal(t, 10, f.stocks.remaining[7], "refund returns the units to stock")
}

func TestRecheck_GatewayUnavailable(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})
	f.gateway.errs = map[string]error{"ORD-1": context.DeadlineExceeded}

	_, err := f.svc.Recheck(context.Background(), "ORD-1", nil)
	assert.ErrorIs(t, err, utils.ErrGatewayUnavailable)
	assert.Equal(t, models.StatusPending, f.store.status("ORD-1"))
}

func TestRecheck_UnknownOrder(t *testing.T) {
	f := newFixture(newFakeTransactionStore(), map[int]int{})
	_, err := f.svc.Recheck(context.Background(), "GHOST-1", nil)
	assert.ErrorIs(t, err, utils.ErrTransactionNotFound)
}

func TestOverride_ReasonTooShort(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})

	_, err := f.svc.Override(context.Background(), "ORD-1", models.StatusFailed,
		Actor{ID: "admin:9"}, "  short  ")
	assert.ErrorIs(t, err, utils.ErrReasonTooShort)
	assert.Equal(t, models.StatusPending, f.store.status("ORD-1"))
	assert.Empty(t, f.audits.entries)
}

func TestOverride_AlreadyPaid(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusPaid
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 8})

	_, err := f.svc.Override(context.Background(), "ORD-1", models.StatusPaid,
		Actor{ID: "admin:9"}, "customer paid by bank transfer, confirming manually")
	assert.ErrorIs(t, err, utils.ErrAlreadyPaid)
	assert.Equal(t, 8, f.stocks.remaining[7], "repeat paid override must never decrement stock again")
	assert.Empty(t, f.tickets.issued[1])
}

func TestOverride_InvalidTransition(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusExpired
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 10})

	_, err := f.svc.Override(context.Background(), "ORD-1", models.StatusPaid,
		Actor{ID: "admin:9"}, "attempting to revive an expired order")
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	assert.Equal(t, models.StatusExpired, f.store.status("ORD-1"))
}

func TestOverride_MarksPendingPaid(t *testing.T) {
	f := newFixture(newFakeTransactionStore(pendingTransaction(1, "ORD-1")), map[int]int{7: 10})

	res, err := f.svc.Override(context.Background(), "ORD-1", models.StatusPaid,
		Actor{ID: "admin:9", Email: "ops@sun6bks.com"}, "bank confirmed transfer out-of-band")
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StatusPaid, f.store.status("ORD-1"))
	assert.Len(t, f.tickets.issued[1], 2)
	assert.Equal(t, 8, f.stocks.remaining[7])

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, models.AuditActionManualOverride, f.audits.entries[0].Action)
	assert.Equal(t, "admin:9", f.audits.entries[0].ActorID)
	assert.Equal(t, "bank confirmed transfer out-of-band", f.audits.entries[0].Reason)
}

func TestOverride_RefundsPaidTransaction(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	trx.Status = models.StatusPaid
	f := newFixture(newFakeTransactionStore(trx), map[int]int{7: 8})
	f.tickets.issued[1] = []string{"SUN6-AAAA-BBBB-CCCC", "SUN6-DDDD-EEEE-FFFF"}

	res, err := f.svc.Override(context.Background(), "ORD-1", models.StatusRefunded,
		Actor{ID: "admin:9", Email: "ops@sun6bks.com"}, "event cancelled, refunding customer")
	require.NoError(t, err)

	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, models.StatusRefunded, f.store.status("ORD-1"))
	assert.Equal(t, 2, f.tickets.cancelled[1])
	assert.Equal(t, 10, f.stocks.remaining[7])
}

func TestSweepOnce(t *testing.T) {
	paidSoon := pendingTransaction(1, "ORD-PAID")
	gone := pendingTransaction(2, "ORD-GONE")
	flaky := pendingTransaction(3, "ORD-FLAKY")
	store := newFakeTransactionStore(paidSoon, gone, flaky)
	store.stale = []models.Transaction{*paidSoon, *gone, *flaky}

	f := newFixture(store, map[int]int{7: 10})
	f.gateway.responses = map[string]*midtrans.StatusResponse{
		"ORD-PAID": {OrderID: "ORD-PAID", TransactionStatus: "settlement"},
	}
	f.gateway.errs = map[string]error{"ORD-FLAKY": context.DeadlineExceeded}
	// ORD-GONE gets the gateway's not-found answer.

	stats, err := f.svc.SweepOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepStats{Scanned: 3, Updated: 2, Errors: 1}, stats)
	assert.Equal(t, models.StatusPaid, store.status("ORD-PAID"))
	assert.Equal(t, models.StatusExpired, store.status("ORD-GONE"), "orders the gateway never saw are expired")
	assert.Equal(t, models.StatusPending, store.status("ORD-FLAKY"), "transient gateway errors leave the row for the next run")

	assert.Len(t, f.tickets.issued[1], 2)
	assert.Equal(t, 8, f.stocks.remaining[7])

	require.Len(t, f.audits.entries, 2, "sweep audits each applied transition")
	for _, e := range f.audits.entries {
		assert.Equal(t, "system:sweep", e.ActorID)
		assert.Equal(t, models.AuditActionSweep, e.Action)
	}
}

func TestSweepOnce_BatchLimit(t *testing.T) {
	store := newFakeTransactionStore()
	for i := 0; i < 80; i++ {
		trx := pendingTransaction(i+1, "ORD-"+string(rune('A'+i%26))+"-"+time.Now().Format("150405")+"-"+string(rune('0'+i%10)))
		store.rows[trx.OrderID] = trx
		store.stale = append(store.stale, *trx)
	}

	f := newFixture(store, map[int]int{7: 1000})
	stats, err := f.svc.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Scanned, "sweep processes at most the configured batch size")
}

func TestSweepOnce_CancelledContext(t *testing.T) {
	trx := pendingTransaction(1, "ORD-1")
	store := newFakeTransactionStore(trx)
	store.stale = []models.Transaction{*trx}

	f := newFixture(store, map[int]int{7: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.SweepOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.StatusPending, store.status("ORD-1"))
}
