// Package domain contains persistence models for the accounts-receivable ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ReceivableType tags the originating record of a receivable.
type ReceivableType string

const (
	ReceivableTypeInvoice      ReceivableType = "invoice"
	ReceivableTypeSubscription ReceivableType = "subscription"
)

// ReceivableStatus is derived from the live transaction set, never set
// directly by callers.
type ReceivableStatus string

const (
	StatusPending ReceivableStatus = "pending"
	StatusPartial ReceivableStatus = "partial"
	StatusPaid    ReceivableStatus = "paid"
)

// PaymentMethod identifies how a payment was collected.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodUPI  PaymentMethod = "upi"
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
)

// Receivable is a billing obligation owed by a member. Immutable after
// creation except for Status. Amounts are minor units (paise).
type Receivable struct {
	ID             snowflake.ID     `gorm:"primaryKey" json:"receivable_id"`
	UserID         snowflake.ID     `gorm:"not null;index" json:"user_id"`
	ReceivableType ReceivableType   `gorm:"type:text;not null;uniqueIndex:ux_receivables_type_source,priority:1" json:"receivable_type"`
	SourceID       snowflake.ID     `gorm:"not null;uniqueIndex:ux_receivables_type_source,priority:2" json:"source_id"`
	BillAmount     int64            `gorm:"not null" json:"bill_amount"`
	DiscountAmount int64            `gorm:"not null;default:0" json:"discount_amount"`
	FinalAmount    int64            `gorm:"not null" json:"final_amount"`
	Status         ReceivableStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	DueDate        *time.Time       `gorm:"" json:"due_date,omitempty"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Receivable) TableName() string { return "accounts_receivable" }

// Transaction is a single payment event applied against a receivable.
// Immutable; removable only through reversal.
type Transaction struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"transaction_id"`
	ReceivableID snowflake.ID  `gorm:"not null;index" json:"receivable_id"`
	Method       PaymentMethod `gorm:"type:text;not null" json:"method"`
	Amount       int64         `gorm:"not null" json:"amount"`
	Reference    string        `gorm:"type:text" json:"reference,omitempty"`
	CreatedBy    *snowflake.ID `gorm:"" json:"created_by,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "ar_transactions" }

// DeriveStatus computes receivable status from the received total. Pure and
// order-independent: it is re-derivable from scratch at any point, so
// reversals need no transition bookkeeping. Overpayment collapses to paid.
func DeriveStatus(received, final int64) ReceivableStatus {
	switch {
	case received == 0:
		return StatusPending
	case received < final:
		return StatusPartial
	default:
		return StatusPaid
	}
}

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodUPI, MethodCard, MethodBank:
		return true
	default:
		return false
	}
}

// ValidType reports whether t is a known receivable category.
func ValidType(t ReceivableType) bool {
	switch t {
	case ReceivableTypeInvoice, ReceivableTypeSubscription:
		return true
	default:
		return false
	}
}
