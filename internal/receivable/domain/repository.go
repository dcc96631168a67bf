package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertReceivable(ctx context.Context, db *gorm.DB, rec *Receivable) error
	FindReceivableByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Receivable, error)
	FindReceivableBySource(ctx context.Context, db *gorm.DB, receivableType ReceivableType, sourceID snowflake.ID) (*Receivable, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status ReceivableStatus, at time.Time) error

	InsertTransaction(ctx context.Context, db *gorm.DB, tx *Transaction) error
	FindTransactionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Transaction, error)
	DeleteTransaction(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	SumReceived(ctx context.Context, db *gorm.DB, receivableID snowflake.ID) (int64, error)
	SumByMethod(ctx context.Context, db *gorm.DB, receivableID snowflake.ID) ([]MethodTotal, error)

	ListOverdue(ctx context.Context, db *gorm.DB, asOf time.Time) ([]OverdueReceivable, error)
}
