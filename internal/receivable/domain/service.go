package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidBillAmount = errors.New("invalid_bill_amount")
	ErrInvalidDiscount   = errors.New("invalid_discount_amount")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidMethod     = errors.New("invalid_method")
	ErrInvalidType       = errors.New("invalid_receivable_type")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNoPaymentLines    = errors.New("no_payment_lines")
	ErrDuplicateSource   = errors.New("duplicate_source")
	ErrNotFound          = errors.New("not_found")
)

type CreateReceivableRequest struct {
	UserID         snowflake.ID
	ReceivableType ReceivableType
	SourceID       snowflake.ID
	BillAmount     int64
	DiscountAmount int64
	DueDate        *time.Time
}

type RecordTransactionRequest struct {
	ReceivableID snowflake.ID
	Method       PaymentMethod
	Amount       int64
	Reference    string
	CreatedBy    *snowflake.ID
}

// PaymentLine is one leg of a split payment.
type PaymentLine struct {
	Method    PaymentMethod
	Amount    int64
	Reference string
}

// Balance is the live position of a receivable, recomputed from source
// rows on every read.
type Balance struct {
	Received int64            `json:"received"`
	Final    int64            `json:"final"`
	Status   ReceivableStatus `json:"status"`
}

// MethodTotal is a per-method received total.
type MethodTotal struct {
	Method PaymentMethod `json:"method"`
	Total  int64         `json:"total"`
	Count  int64         `json:"count"`
}

// Breakdown is a receivable with its payment position and per-method totals.
type Breakdown struct {
	Receivable Receivable    `json:"receivable"`
	Received   int64         `json:"received_total"`
	Balance    int64         `json:"balance"`
	Methods    []MethodTotal `json:"methods"`
}

// OverdueReceivable is an unpaid receivable past its due date, annotated
// with the owing member's name.
type OverdueReceivable struct {
	Receivable
	FullName string `json:"full_name"`
}

type Service interface {
	CreateReceivable(ctx context.Context, req CreateReceivableRequest) (Receivable, error)
	RecordTransaction(ctx context.Context, req RecordTransactionRequest) (Transaction, error)
	RecordPaymentLines(ctx context.Context, receivableID snowflake.ID, lines []PaymentLine, createdBy *snowflake.ID) ([]Transaction, error)
	GetBalance(ctx context.Context, receivableID snowflake.ID) (Balance, error)
	ReverseTransaction(ctx context.Context, transactionID snowflake.ID) error
	GetBreakdown(ctx context.Context, receivableID snowflake.ID) (Breakdown, error)
	GetBySource(ctx context.Context, receivableType ReceivableType, sourceID snowflake.ID) (Receivable, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]OverdueReceivable, error)
	RecomputeStatus(ctx context.Context, receivableID snowflake.ID) (ReceivableStatus, error)
}
