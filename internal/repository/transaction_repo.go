package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sun6bks/ticket-api/internal/models"
)

// TransactionRepository handles data access for transactions.
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction row in pending status.
func (r *TransactionRepository) Create(trx *models.Transaction) error {
	const q = `
        INSERT INTO transactions (
            order_id, event_id, category_id, quantity, amount, status,
            customer_name, customer_email, customer_phone,
            snap_token, snap_redirect_url, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,
            $7,$8,$9,
            $10,$11,NOW(),NOW()
        ) RETURNING id, created_at`

	return r.db.QueryRow(q,
		trx.OrderID, trx.EventID, trx.CategoryID, trx.Quantity, trx.Amount, trx.Status,
		trx.CustomerName, trx.CustomerEmail, trx.CustomerPhone,
		trx.SnapToken, trx.SnapRedirectURL,
	).Scan(&trx.ID, &trx.CreatedAt)
}

// GetByOrderID returns a transaction by its gateway-facing order_id.
func (r *TransactionRepository) GetByOrderID(orderID string) (*models.Transaction, error) {
	const q = `SELECT * FROM transactions WHERE order_id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	var t models.Transaction
	if err := stmt.Get(&t, orderID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &t, nil
}

// UpdateStatusIf performs the optimistic-locked status move: the row is
// updated only when its status still equals expected. paid_at / expired_at
// are stamped inside the same statement so they are set exactly once.
// Returns whether the update applied; a false return means another writer
// won the race and the caller must not run side effects.
func (r *TransactionRepository) UpdateStatusIf(orderID string, expected, next models.TransactionStatus) (bool, error) {
	const q = `
        UPDATE transactions SET
            status = $3,
            paid_at = CASE WHEN $3 = 'paid' THEN NOW() ELSE paid_at END,
            expired_at = CASE WHEN $3 = 'expired' THEN NOW() ELSE expired_at END,
            updated_at = NOW()
        WHERE order_id = $1 AND status = $2`

	res, err := r.db.Exec(q, orderID, expected, next)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateGatewayDetails records gateway-reported payment metadata. It never
// touches status; that moves only through UpdateStatusIf.
func (r *TransactionRepository) UpdateGatewayDetails(orderID string, paymentType, fraudStatus *string) error {
	const q = `
        UPDATE transactions SET
            payment_type = COALESCE($2, payment_type),
            fraud_status = COALESCE($3, fraud_status),
            updated_at = NOW()
        WHERE order_id = $1`
	_, err := r.db.Exec(q, orderID, paymentType, fraudStatus)
	return err
}

// GetStalePending returns pending transactions older than the given age,
// oldest first, capped at limit. Used by the reconcile sweep.
func (r *TransactionRepository) GetStalePending(olderThan time.Duration, limit int) ([]models.Transaction, error) {
	const q = `
        SELECT * FROM transactions
        WHERE status = 'pending'
          AND created_at < NOW() - $1::interval
        ORDER BY created_at ASC
        LIMIT $2`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	intervalStr := fmt.Sprintf("%d seconds", int(olderThan.Seconds()))

	var list []models.Transaction
	if err := stmt.Select(&list, intervalStr, limit); err != nil {
		return nil, err
	}
	return list, nil
}

// AdminTransactionFilter holds filters for admin transaction queries.
type AdminTransactionFilter struct {
	Status        *string
	EventID       *int
	OrderID       *string
	CustomerEmail *string
	StartDate     *string
	EndDate       *string
	Page          int
	Limit         int
}

// AdminTransactionResult contains paginated transaction results.
type AdminTransactionResult struct {
	Transactions []models.Transaction
	TotalItems   int
	TotalPages   int
	Page         int
	Limit        int
}

// GetAllAdmin returns transactions for admin with filters and pagination.
func (r *TransactionRepository) GetAllAdmin(filter *AdminTransactionFilter) (*AdminTransactionResult, error) {
	baseQ := `FROM transactions t WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseQ += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EventID != nil {
		baseQ += fmt.Sprintf(" AND t.event_id = $%d", argIdx)
		args = append(args, *filter.EventID)
		argIdx++
	}
	if filter.OrderID != nil && *filter.OrderID != "" {
		baseQ += fmt.Sprintf(" AND t.order_id ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.OrderID+"%")
		argIdx++
	}
	if filter.CustomerEmail != nil && *filter.CustomerEmail != "" {
		baseQ += fmt.Sprintf(" AND t.customer_email ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.CustomerEmail+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseQ += fmt.Sprintf(" AND t.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseQ += fmt.Sprintf(" AND t.created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQ := "SELECT COUNT(*) " + baseQ
	var total int
	if err := r.db.Get(&total, countQ, args...); err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit
	totalPages := (total + filter.Limit - 1) / filter.Limit

	selectQ := fmt.Sprintf("SELECT t.* %s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", baseQ, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var transactions []models.Transaction
	if err := r.db.Select(&transactions, selectQ, args...); err != nil {
		return nil, err
	}

	return &AdminTransactionResult{
		Transactions: transactions,
		TotalItems:   total,
		TotalPages:   totalPages,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

// AdminTransactionStats contains transaction statistics for the dashboard.
type AdminTransactionStats struct {
	TotalTransactions    int   `db:"total_transactions" json:"totalTransactions"`
	PaidTransactions     int   `db:"paid_transactions" json:"paidTransactions"`
	PendingTransactions  int   `db:"pending_transactions" json:"pendingTransactions"`
	ExpiredTransactions  int   `db:"expired_transactions" json:"expiredTransactions"`
	FailedTransactions   int   `db:"failed_transactions" json:"failedTransactions"`
	RefundedTransactions int   `db:"refunded_transactions" json:"refundedTransactions"`
	TotalRevenue         int64 `db:"total_revenue" json:"totalRevenue"`
	TicketsSold          int   `db:"tickets_sold" json:"ticketsSold"`
}

// GetAdminStats returns aggregate transaction statistics.
func (r *TransactionRepository) GetAdminStats() (*AdminTransactionStats, error) {
	const q = `SELECT
            COUNT(*) as total_transactions,
            COUNT(*) FILTER (WHERE status = 'paid') as paid_transactions,
            COUNT(*) FILTER (WHERE status = 'pending') as pending_transactions,
            COUNT(*) FILTER (WHERE status = 'expired') as expired_transactions,
            COUNT(*) FILTER (WHERE status = 'failed') as failed_transactions,
            COUNT(*) FILTER (WHERE status = 'refunded') as refunded_transactions,
            COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) as total_revenue,
            COALESCE(SUM(quantity) FILTER (WHERE status = 'paid'), 0) as tickets_sold
          FROM transactions`

	var stats AdminTransactionStats
	if err := r.db.Get(&stats, q); err != nil {
		return nil, err
	}
	return &stats, nil
}
