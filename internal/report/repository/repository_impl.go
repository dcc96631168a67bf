package repository

import (
	"context"
	"time"

	"github.com/fitstack/clubledger/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// exclusiveEnd converts an inclusive date bound into the half-open upper
// bound used against timestamp columns.
func exclusiveEnd(rng domain.DateRange) time.Time {
	return rng.End.AddDate(0, 0, 1)
}

func (r *repo) InvoicesInRange(ctx context.Context, db *gorm.DB, rng domain.DateRange, limit int) ([]domain.InvoiceView, error) {
	var rows []domain.InvoiceView
	err := db.WithContext(ctx).Raw(
		`SELECT
		   i.id AS invoice_id,
		   i.user_id,
		   COALESCE(u.full_name, '') AS customer_name,
		   COALESCE(u.phone, '') AS customer_phone,
		   (SELECT COUNT(*) FROM invoice_items ii WHERE ii.invoice_id = i.id) AS item_count,
		   i.items_subtotal,
		   i.gst_total,
		   i.shipping,
		   i.final_total,
		   i.status,
		   i.created_at,
		   i.paid_at
		 FROM invoices i
		 LEFT JOIN users u ON u.id = i.user_id
		 WHERE i.created_at >= ? AND i.created_at < ?
		 ORDER BY i.created_at DESC, i.id DESC
		 LIMIT ?`,
		rng.Start,
		exclusiveEnd(rng),
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) SummaryInRange(ctx context.Context, db *gorm.DB, rng domain.DateRange) (domain.Summary, error) {
	var row struct {
		TotalInvoices   int64
		TotalAmount     int64
		PaidAmount      int64
		PendingAmount   int64
		UniqueCustomers int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT
		   COUNT(*) AS total_invoices,
		   COALESCE(SUM(final_total), 0) AS total_amount,
		   COALESCE(SUM(CASE WHEN status = 'paid' THEN final_total ELSE 0 END), 0) AS paid_amount,
		   COALESCE(SUM(CASE WHEN status <> 'paid' THEN final_total ELSE 0 END), 0) AS pending_amount,
		   COUNT(DISTINCT user_id) AS unique_customers
		 FROM invoices
		 WHERE created_at >= ? AND created_at < ?`,
		rng.Start,
		exclusiveEnd(rng),
	).Scan(&row).Error
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summary{
		TotalInvoices:   row.TotalInvoices,
		TotalAmount:     row.TotalAmount,
		PaidAmount:      row.PaidAmount,
		PendingAmount:   row.PendingAmount,
		UniqueCustomers: row.UniqueCustomers,
	}
	if summary.TotalInvoices > 0 {
		summary.AvgInvoiceAmount = float64(summary.TotalAmount) / float64(summary.TotalInvoices)
	}
	return summary, nil
}

func (r *repo) CollectionsByMethod(ctx context.Context, db *gorm.DB, rng domain.DateRange) ([]domain.MethodRow, error) {
	var rows []domain.MethodRow
	err := db.WithContext(ctx).Raw(
		`SELECT method, COUNT(*) AS tx_count, COALESCE(SUM(amount), 0) AS total
		 FROM ar_transactions
		 WHERE created_at >= ? AND created_at < ?
		 GROUP BY method
		 ORDER BY method ASC`,
		rng.Start,
		exclusiveEnd(rng),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CollectionsByDay(ctx context.Context, db *gorm.DB, rng domain.DateRange) ([]domain.CollectionRow, error) {
	var raw []struct {
		Day    string
		Method string
		Total  int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT DATE(created_at) AS day, method, COALESCE(SUM(amount), 0) AS total
		 FROM ar_transactions
		 WHERE created_at >= ? AND created_at < ?
		 GROUP BY DATE(created_at), method
		 ORDER BY day ASC, method ASC`,
		rng.Start,
		exclusiveEnd(rng),
	).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domain.CollectionRow, 0, len(raw))
	for _, rec := range raw {
		s := rec.Day
		if len(s) > 10 {
			s = s[:10]
		}
		day, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.CollectionRow{Day: day, Method: rec.Method, Total: rec.Total})
	}
	return rows, nil
}

func (r *repo) CollectionsItemized(ctx context.Context, db *gorm.DB, rng domain.DateRange) ([]domain.PaymentDetail, error) {
	var rows []domain.PaymentDetail
	err := db.WithContext(ctx).Raw(
		`SELECT
		   t.id AS transaction_id,
		   t.receivable_id,
		   ar.user_id,
		   COALESCE(u.full_name, '') AS customer_name,
		   ar.receivable_type,
		   ar.source_id,
		   t.method,
		   t.amount,
		   t.reference,
		   t.created_at
		 FROM ar_transactions t
		 JOIN accounts_receivable ar ON ar.id = t.receivable_id
		 LEFT JOIN users u ON u.id = ar.user_id
		 WHERE t.created_at >= ? AND t.created_at < ?
		 ORDER BY t.created_at DESC, t.id DESC`,
		rng.Start,
		exclusiveEnd(rng),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Outstanding(ctx context.Context, db *gorm.DB, asOf time.Time) ([]domain.OutstandingRow, error) {
	var rows []domain.OutstandingRow
	err := db.WithContext(ctx).Raw(
		`SELECT
		   ar.id AS receivable_id,
		   ar.user_id,
		   COALESCE(u.full_name, '') AS customer_name,
		   ar.receivable_type,
		   ar.source_id,
		   ar.final_amount,
		   COALESCE((SELECT SUM(t.amount) FROM ar_transactions t WHERE t.receivable_id = ar.id), 0) AS received,
		   ar.final_amount - COALESCE((SELECT SUM(t.amount) FROM ar_transactions t WHERE t.receivable_id = ar.id), 0) AS balance_due,
		   ar.status,
		   ar.due_date
		 FROM accounts_receivable ar
		 LEFT JOIN users u ON u.id = ar.user_id
		 WHERE ar.status <> 'paid' AND ar.created_at <= ?
		 ORDER BY balance_due DESC, ar.id ASC`,
		asOf,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
