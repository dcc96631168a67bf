// Package domain contains persistence models for member invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// Invoice represents a store/GST invoice issued to a member. Amounts are
// minor units (paise).
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"invoice_id"`
	UserID        snowflake.ID      `gorm:"not null;index" json:"user_id"`
	ItemsSubtotal int64             `gorm:"not null;default:0" json:"items_subtotal"`
	GSTTotal      int64             `gorm:"not null;default:0" json:"gst_total"`
	Shipping      int64             `gorm:"not null;default:0" json:"shipping"`
	FinalTotal    int64             `gorm:"not null;default:0" json:"final_total"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'pending'" json:"status"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	PaidAt        *time.Time        `gorm:"" json:"paid_at,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem represents a line on an invoice.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"item_id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	ItemName  string       `gorm:"type:text;not null" json:"item_name"`
	Quantity  int64        `gorm:"not null" json:"quantity"`
	UnitPrice int64        `gorm:"not null" json:"unit_price"`
	GSTRate   float64      `gorm:"not null;default:0" json:"gst_rate"`
	LineTotal int64        `gorm:"not null" json:"line_total"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
