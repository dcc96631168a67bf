package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrNoItems     = errors.New("no_items")
	ErrInvalidItem = errors.New("invalid_item")
	ErrNotFound    = errors.New("not_found")
	ErrAlreadyPaid = errors.New("already_paid")
	ErrNotPayable  = errors.New("not_payable")
)

// LineItem is one requested line on a new invoice. GSTRate is a percentage
// (e.g. 18 for 18%).
type LineItem struct {
	ItemName  string
	Quantity  int64
	UnitPrice int64
	GSTRate   float64
}

type CreateInvoiceRequest struct {
	UserID   snowflake.ID
	Items    []LineItem
	Shipping int64
}

// InvoiceWithItems is an invoice together with its lines.
type InvoiceWithItems struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceWithItems, error)
	GetByID(ctx context.Context, id snowflake.ID) (InvoiceWithItems, error)
	MarkPaid(ctx context.Context, id snowflake.ID) (Invoice, error)
	MarkRejected(ctx context.Context, id snowflake.ID) (Invoice, error)
}
