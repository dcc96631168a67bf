package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FeeStatus mirrors the membership-fee flag kept on the member record.
type FeeStatus string

const (
	FeeStatusPaid   FeeStatus = "paid"
	FeeStatusUnpaid FeeStatus = "unpaid"
)

type User struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"user_id"`
	FullName  string       `gorm:"not null" json:"full_name"`
	Phone     string       `gorm:"type:text" json:"phone"`
	FeeStatus FeeStatus    `gorm:"type:text;not null;default:'unpaid'" json:"fee_status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
