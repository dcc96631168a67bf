package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRangeTooWide   = errors.New("range_too_wide")
	ErrInvalidMonth   = errors.New("invalid_month")
	ErrInvalidQuarter = errors.New("invalid_quarter")
	ErrInvalidHalf    = errors.New("invalid_half")
	ErrInvalidYear    = errors.New("invalid_year")
)

// Service is the reporting aggregator. All operations are read-only and
// run under ordinary read-committed semantics; they may race ledger writes.
type Service interface {
	InvoicesInRange(ctx context.Context, start, end time.Time) ([]InvoiceView, error)
	SummaryInRange(ctx context.Context, start, end time.Time) (Summary, error)

	// Custom-range operations reject windows wider than the configured cap
	// with ok=false and ErrRangeTooWide. Reversed bounds are swapped, not
	// rejected. Callers branch on ok for range rejection, distinct from
	// transport errors.
	CustomRangeInvoices(ctx context.Context, start, end time.Time) (bool, []InvoiceView, error)
	CustomRangeSummary(ctx context.Context, start, end time.Time) (bool, Summary, error)

	MonthInvoices(ctx context.Context, year, month int) ([]InvoiceView, DateRange, error)
	MonthSummary(ctx context.Context, year, month int) (Summary, DateRange, error)
	QuarterSummary(ctx context.Context, year, q int) (Summary, DateRange, error)
	HalfYearSummary(ctx context.Context, year, h int) (Summary, DateRange, error)
	YearSummary(ctx context.Context, year int) (Summary, DateRange, error)

	DailyCollections(ctx context.Context, day time.Time) (DayCollections, error)
	CollectionSummary(ctx context.Context, start, end time.Time) ([]CollectionRow, int64, error)
	MethodBreakdown(ctx context.Context, start, end time.Time) ([]MethodRow, error)
	Outstanding(ctx context.Context, asOf time.Time) ([]OutstandingRow, error)
	Aging(ctx context.Context, asOf time.Time) ([]AgingRow, error)
}
