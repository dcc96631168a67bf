package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/receivable/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertReceivable(ctx context.Context, db *gorm.DB, rec *domain.Receivable) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO accounts_receivable
		 (id, user_id, receivable_type, source_id, bill_amount, discount_amount, final_amount, status, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.UserID,
		rec.ReceivableType,
		rec.SourceID,
		rec.BillAmount,
		rec.DiscountAmount,
		rec.FinalAmount,
		rec.Status,
		rec.DueDate,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Error
}

func (r *repo) FindReceivableByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Receivable, error) {
	var rec domain.Receivable
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM accounts_receivable WHERE id = ?`,
		id,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *repo) FindReceivableBySource(ctx context.Context, db *gorm.DB, receivableType domain.ReceivableType, sourceID snowflake.ID) (*domain.Receivable, error) {
	var rec domain.Receivable
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM accounts_receivable
		 WHERE receivable_type = ? AND source_id = ?
		 ORDER BY created_at DESC
		 LIMIT 1`,
		receivableType,
		sourceID,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.ReceivableStatus, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE accounts_receivable SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		at,
		id,
	).Error
}

func (r *repo) InsertTransaction(ctx context.Context, db *gorm.DB, tx *domain.Transaction) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO ar_transactions (id, receivable_id, method, amount, reference, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.ReceivableID,
		tx.Method,
		tx.Amount,
		tx.Reference,
		tx.CreatedBy,
		tx.CreatedAt,
	).Error
}

func (r *repo) FindTransactionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM ar_transactions WHERE id = ?`,
		id,
	).Scan(&tx).Error
	if err != nil {
		return nil, err
	}
	if tx.ID == 0 {
		return nil, nil
	}
	return &tx, nil
}

func (r *repo) DeleteTransaction(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM ar_transactions WHERE id = ?`,
		id,
	).Error
}

func (r *repo) SumReceived(ctx context.Context, db *gorm.DB, receivableID snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM ar_transactions WHERE receivable_id = ?`,
		receivableID,
	).Scan(&total).Error
	return total, err
}

func (r *repo) SumByMethod(ctx context.Context, db *gorm.DB, receivableID snowflake.ID) ([]domain.MethodTotal, error) {
	var totals []domain.MethodTotal
	err := db.WithContext(ctx).Raw(
		`SELECT method, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
		 FROM ar_transactions
		 WHERE receivable_id = ?
		 GROUP BY method
		 ORDER BY total DESC`,
		receivableID,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repo) ListOverdue(ctx context.Context, db *gorm.DB, asOf time.Time) ([]domain.OverdueReceivable, error) {
	var rows []domain.OverdueReceivable
	err := db.WithContext(ctx).Raw(
		`SELECT ar.*, u.full_name
		 FROM accounts_receivable ar
		 JOIN users u ON u.id = ar.user_id
		 WHERE ar.status <> ? AND ar.due_date IS NOT NULL AND ar.due_date < ?
		 ORDER BY ar.due_date ASC`,
		domain.StatusPaid,
		asOf,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
