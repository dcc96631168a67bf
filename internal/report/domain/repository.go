package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InvoicesInRange(ctx context.Context, db *gorm.DB, rng DateRange, limit int) ([]InvoiceView, error)
	SummaryInRange(ctx context.Context, db *gorm.DB, rng DateRange) (Summary, error)

	CollectionsByMethod(ctx context.Context, db *gorm.DB, rng DateRange) ([]MethodRow, error)
	CollectionsByDay(ctx context.Context, db *gorm.DB, rng DateRange) ([]CollectionRow, error)
	CollectionsItemized(ctx context.Context, db *gorm.DB, rng DateRange) ([]PaymentDetail, error)
	Outstanding(ctx context.Context, db *gorm.DB, asOf time.Time) ([]OutstandingRow, error)
}
