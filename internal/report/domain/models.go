// Package domain contains the read models for reporting.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceView is one invoice row as presented in reports, joined with the
// member directory. Amounts are minor units (paise).
type InvoiceView struct {
	InvoiceID     snowflake.ID `json:"invoice_id"`
	UserID        snowflake.ID `json:"user_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	ItemCount     int64        `json:"item_count"`
	ItemsSubtotal int64        `json:"items_subtotal"`
	GSTTotal      int64        `json:"gst_total"`
	Shipping      int64        `json:"shipping"`
	FinalTotal    int64        `json:"final_total"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	PaidAt        *time.Time   `json:"paid_at,omitempty"`
}

// Summary aggregates invoices over a window with a two-way paid/not-paid
// split. AvgInvoiceAmount is 0.0 when the window holds no invoices.
type Summary struct {
	TotalInvoices    int64   `json:"total_invoices"`
	TotalAmount      int64   `json:"total_amount"`
	PaidAmount       int64   `json:"paid_amount"`
	PendingAmount    int64   `json:"pending_amount"`
	UniqueCustomers  int64   `json:"unique_customers"`
	AvgInvoiceAmount float64 `json:"avg_invoice_amount"`
}

// DateRange is an inclusive calendar window. Start and End are dates at
// midnight UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive span in days.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Span returns the exclusive day difference between End and Start. A full
// two-year window has a span of 730 even though it covers 731 days.
func (r DateRange) Span() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Label renders the range for report headers.
func (r DateRange) Label() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// MethodRow is a per-payment-method collection total.
type MethodRow struct {
	Method  string `json:"method"`
	TxCount int64  `json:"tx_count"`
	Total   int64  `json:"total"`
}

// PaymentDetail is one itemized transaction on a daily collections report,
// joined with the receivable it settles and the member directory.
type PaymentDetail struct {
	TransactionID  snowflake.ID `json:"transaction_id"`
	ReceivableID   snowflake.ID `json:"receivable_id"`
	UserID         snowflake.ID `json:"user_id"`
	CustomerName   string       `json:"customer_name"`
	ReceivableType string       `json:"receivable_type"`
	SourceID       snowflake.ID `json:"source_id"`
	Method         string       `json:"method"`
	Amount         int64        `json:"amount"`
	Reference      string       `json:"reference,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// DayCollections is a single day's collections, split by method and
// itemized newest first.
type DayCollections struct {
	Date     time.Time       `json:"date"`
	ByMethod []MethodRow     `json:"by_method"`
	Payments []PaymentDetail `json:"payments"`
	Total    int64           `json:"total"`
}

// CollectionRow is one (day, method) cell of a collection summary.
type CollectionRow struct {
	Day    time.Time `json:"day"`
	Method string    `json:"method"`
	Total  int64     `json:"total"`
}

// OutstandingRow is a receivable with money still owed, largest balance
// first.
type OutstandingRow struct {
	ReceivableID   snowflake.ID `json:"receivable_id"`
	UserID         snowflake.ID `json:"user_id"`
	CustomerName   string       `json:"customer_name"`
	ReceivableType string       `json:"receivable_type"`
	SourceID       snowflake.ID `json:"source_id"`
	FinalAmount    int64        `json:"final_amount"`
	Received       int64        `json:"received"`
	BalanceDue     int64        `json:"balance_due"`
	Status         string       `json:"status"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
}

// AgingRow is one bucket of the receivables aging report.
type AgingRow struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
	Total  int64  `json:"total"`
}
