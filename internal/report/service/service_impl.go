package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fitstack/clubledger/internal/config"
	"github.com/fitstack/clubledger/internal/observability/metrics"
	"github.com/fitstack/clubledger/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Config  *config.ReportConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	config  *config.ReportConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("report.service"),
		repo:    p.Repo,
		config:  p.Config,
		metrics: p.Metrics,
	}
}

func (s *Service) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.InvoiceView, error) {
	rng := domain.Normalize(start, end)
	rows, err := s.repo.InvoicesInRange(ctx, s.db, rng, s.config.Get().MaxRows)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReport("invoices_in_range")
	return rows, nil
}

func (s *Service) SummaryInRange(ctx context.Context, start, end time.Time) (domain.Summary, error) {
	rng := domain.Normalize(start, end)
	summary, err := s.repo.SummaryInRange(ctx, s.db, rng)
	if err != nil {
		return domain.Summary{}, err
	}
	s.metrics.RecordReport("summary_in_range")
	return summary, nil
}

// checkRange normalizes a caller-supplied window and enforces the
// configured span cap. The cap is the exclusive end-start difference, so a
// window whose span equals the cap is still accepted. ok=false means the
// range was rejected, not that the query failed.
func (s *Service) checkRange(start, end time.Time) (domain.DateRange, bool, error) {
	rng := domain.Normalize(start, end)
	maxDays := s.config.Get().MaxRangeDays
	if rng.Span() > maxDays {
		s.log.Warn("custom range rejected",
			zap.String("range", rng.Label()),
			zap.Int("span_days", rng.Span()),
			zap.Int("max_days", maxDays),
		)
		return domain.DateRange{}, false, fmt.Errorf("%w: %d days exceeds the %d day limit", domain.ErrRangeTooWide, rng.Span(), maxDays)
	}
	return rng, true, nil
}

func (s *Service) CustomRangeInvoices(ctx context.Context, start, end time.Time) (bool, []domain.InvoiceView, error) {
	rng, ok, err := s.checkRange(start, end)
	if !ok {
		return false, nil, err
	}
	rows, err := s.repo.InvoicesInRange(ctx, s.db, rng, s.config.Get().MaxRows)
	if err != nil {
		return true, nil, err
	}
	s.metrics.RecordReport("custom_range_invoices")
	return true, rows, nil
}

func (s *Service) CustomRangeSummary(ctx context.Context, start, end time.Time) (bool, domain.Summary, error) {
	rng, ok, err := s.checkRange(start, end)
	if !ok {
		return false, domain.Summary{}, err
	}
	summary, err := s.repo.SummaryInRange(ctx, s.db, rng)
	if err != nil {
		return true, domain.Summary{}, err
	}
	s.metrics.RecordReport("custom_range_summary")
	return true, summary, nil
}

func (s *Service) MonthInvoices(ctx context.Context, year, month int) ([]domain.InvoiceView, domain.DateRange, error) {
	rng, err := domain.MonthRange(year, month)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	rows, err := s.repo.InvoicesInRange(ctx, s.db, rng, s.config.Get().MaxRows)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	s.metrics.RecordReport("month_invoices")
	return rows, rng, nil
}

func (s *Service) MonthSummary(ctx context.Context, year, month int) (domain.Summary, domain.DateRange, error) {
	rng, err := domain.MonthRange(year, month)
	if err != nil {
		return domain.Summary{}, domain.DateRange{}, err
	}
	return s.rangeSummary(ctx, rng, "month_summary")
}

func (s *Service) QuarterSummary(ctx context.Context, year, q int) (domain.Summary, domain.DateRange, error) {
	rng, err := domain.QuarterRange(year, q)
	if err != nil {
		return domain.Summary{}, domain.DateRange{}, err
	}
	return s.rangeSummary(ctx, rng, "quarter_summary")
}

func (s *Service) HalfYearSummary(ctx context.Context, year, h int) (domain.Summary, domain.DateRange, error) {
	rng, err := domain.HalfYearRange(year, h)
	if err != nil {
		return domain.Summary{}, domain.DateRange{}, err
	}
	return s.rangeSummary(ctx, rng, "half_year_summary")
}

func (s *Service) YearSummary(ctx context.Context, year int) (domain.Summary, domain.DateRange, error) {
	rng, err := domain.YearRange(year)
	if err != nil {
		return domain.Summary{}, domain.DateRange{}, err
	}
	return s.rangeSummary(ctx, rng, "year_summary")
}

func (s *Service) rangeSummary(ctx context.Context, rng domain.DateRange, kind string) (domain.Summary, domain.DateRange, error) {
	summary, err := s.repo.SummaryInRange(ctx, s.db, rng)
	if err != nil {
		return domain.Summary{}, domain.DateRange{}, err
	}
	s.metrics.RecordReport(kind)
	return summary, rng, nil
}

func (s *Service) DailyCollections(ctx context.Context, day time.Time) (domain.DayCollections, error) {
	rng := domain.Normalize(day, day)
	rows, err := s.repo.CollectionsByMethod(ctx, s.db, rng)
	if err != nil {
		return domain.DayCollections{}, err
	}
	payments, err := s.repo.CollectionsItemized(ctx, s.db, rng)
	if err != nil {
		return domain.DayCollections{}, err
	}

	out := domain.DayCollections{Date: rng.Start, ByMethod: rows, Payments: payments}
	for _, row := range rows {
		out.Total += row.Total
	}
	s.metrics.RecordReport("daily_collections")
	return out, nil
}

func (s *Service) CollectionSummary(ctx context.Context, start, end time.Time) ([]domain.CollectionRow, int64, error) {
	rng, ok, err := s.checkRange(start, end)
	if !ok {
		return nil, 0, err
	}
	rows, err := s.repo.CollectionsByDay(ctx, s.db, rng)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, row := range rows {
		total += row.Total
	}
	s.metrics.RecordReport("collection_summary")
	return rows, total, nil
}

func (s *Service) MethodBreakdown(ctx context.Context, start, end time.Time) ([]domain.MethodRow, error) {
	rng, ok, err := s.checkRange(start, end)
	if !ok {
		return nil, err
	}
	rows, err := s.repo.CollectionsByMethod(ctx, s.db, rng)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReport("method_breakdown")
	return rows, nil
}

func (s *Service) Outstanding(ctx context.Context, asOf time.Time) ([]domain.OutstandingRow, error) {
	rows, err := s.repo.Outstanding(ctx, s.db, asOf.UTC())
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReport("outstanding")
	return rows, nil
}

// Aging buckets outstanding balances by days past due, using the
// configured bucket boundaries (default 30/60/90). Not-yet-due receivables
// are "current"; ones without a due date get their own "no_due" bucket.
func (s *Service) Aging(ctx context.Context, asOf time.Time) ([]domain.AgingRow, error) {
	asOf = asOf.UTC()
	rows, err := s.repo.Outstanding(ctx, s.db, asOf)
	if err != nil {
		return nil, err
	}

	bounds := append([]int(nil), s.config.Get().AgingBucketDays...)
	sort.Ints(bounds)

	buckets := make([]domain.AgingRow, 0, len(bounds)+3)
	buckets = append(buckets, domain.AgingRow{Bucket: "current"})
	prev := 0
	for _, b := range bounds {
		buckets = append(buckets, domain.AgingRow{Bucket: fmt.Sprintf("%d-%d", prev+1, b)})
		prev = b
	}
	buckets = append(buckets, domain.AgingRow{Bucket: fmt.Sprintf("%d+", prev+1)})
	noDue := len(buckets)
	buckets = append(buckets, domain.AgingRow{Bucket: "no_due"})

	for _, row := range rows {
		idx := 0
		switch {
		case row.DueDate == nil:
			idx = noDue
		case row.DueDate.Before(asOf):
			overdue := int(asOf.Sub(*row.DueDate).Hours() / 24)
			if overdue < 1 {
				overdue = 1
			}
			idx = noDue - 1
			for i, b := range bounds {
				if overdue <= b {
					idx = i + 1
					break
				}
			}
		}
		buckets[idx].Count++
		buckets[idx].Total += row.BalanceDue
	}

	s.metrics.RecordReport("aging")
	return buckets, nil
}
