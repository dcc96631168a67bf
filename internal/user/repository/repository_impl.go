package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, full_name, phone, fee_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.FullName,
		user.Phone,
		user.FeeStatus,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM users WHERE id = ?`,
		id,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, afterID snowflake.ID, feeStatus domain.FeeStatus, limit int) ([]*domain.User, error) {
	query := `SELECT * FROM users WHERE id > ?`
	args := []interface{}{afterID}
	if feeStatus != "" {
		query += ` AND fee_status = ?`
		args = append(args, feeStatus)
	}
	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit)

	var users []*domain.User
	err := db.WithContext(ctx).Raw(query, args...).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) UpdateFeeStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.FeeStatus, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET fee_status = ?, updated_at = ? WHERE id = ?`,
		status,
		at,
		id,
	).Error
}
