package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	List(ctx context.Context, db *gorm.DB, afterID snowflake.ID, feeStatus FeeStatus, limit int) ([]*User, error)
	UpdateFeeStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status FeeStatus, at time.Time) error
}
