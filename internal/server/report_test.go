package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitstack/clubledger/internal/config"
	reportdomain "github.com/fitstack/clubledger/internal/report/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	rows    []reportdomain.InvoiceView
	summary reportdomain.Summary
	maxDays int
}

func (f *fakeReportService) InvoicesInRange(ctx context.Context, start, end time.Time) ([]reportdomain.InvoiceView, error) {
	_ = ctx
	return f.rows, nil
}

func (f *fakeReportService) SummaryInRange(ctx context.Context, start, end time.Time) (reportdomain.Summary, error) {
	_ = ctx
	return f.summary, nil
}

func (f *fakeReportService) CustomRangeInvoices(ctx context.Context, start, end time.Time) (bool, []reportdomain.InvoiceView, error) {
	_ = ctx
	rng := reportdomain.Normalize(start, end)
	if rng.Span() > f.maxDays {
		return false, nil, fmt.Errorf("%w: too wide", reportdomain.ErrRangeTooWide)
	}
	return true, f.rows, nil
}

func (f *fakeReportService) CustomRangeSummary(ctx context.Context, start, end time.Time) (bool, reportdomain.Summary, error) {
	_ = ctx
	rng := reportdomain.Normalize(start, end)
	if rng.Span() > f.maxDays {
		return false, reportdomain.Summary{}, fmt.Errorf("%w: too wide", reportdomain.ErrRangeTooWide)
	}
	return true, f.summary, nil
}

func (f *fakeReportService) MonthInvoices(ctx context.Context, year, month int) ([]reportdomain.InvoiceView, reportdomain.DateRange, error) {
	_ = ctx
	rng, err := reportdomain.MonthRange(year, month)
	if err != nil {
		return nil, reportdomain.DateRange{}, err
	}
	return f.rows, rng, nil
}

func (f *fakeReportService) MonthSummary(ctx context.Context, year, month int) (reportdomain.Summary, reportdomain.DateRange, error) {
	_ = ctx
	rng, err := reportdomain.MonthRange(year, month)
	if err != nil {
		return reportdomain.Summary{}, reportdomain.DateRange{}, err
	}
	return f.summary, rng, nil
}

func (f *fakeReportService) QuarterSummary(ctx context.Context, year, q int) (reportdomain.Summary, reportdomain.DateRange, error) {
	_ = ctx
	rng, err := reportdomain.QuarterRange(year, q)
	if err != nil {
		return reportdomain.Summary{}, reportdomain.DateRange{}, err
	}
	return f.summary, rng, nil
}

func (f *fakeReportService) HalfYearSummary(ctx context.Context, year, h int) (reportdomain.Summary, reportdomain.DateRange, error) {
	_ = ctx
	rng, err := reportdomain.HalfYearRange(year, h)
	if err != nil {
		return reportdomain.Summary{}, reportdomain.DateRange{}, err
	}
	return f.summary, rng, nil
}

func (f *fakeReportService) YearSummary(ctx context.Context, year int) (reportdomain.Summary, reportdomain.DateRange, error) {
	_ = ctx
	rng, err := reportdomain.YearRange(year)
	if err != nil {
		return reportdomain.Summary{}, reportdomain.DateRange{}, err
	}
	return f.summary, rng, nil
}

func (f *fakeReportService) DailyCollections(ctx context.Context, day time.Time) (reportdomain.DayCollections, error) {
	_ = ctx
	return reportdomain.DayCollections{Date: day}, nil
}

func (f *fakeReportService) CollectionSummary(ctx context.Context, start, end time.Time) ([]reportdomain.CollectionRow, int64, error) {
	_ = ctx
	return nil, 0, nil
}

func (f *fakeReportService) MethodBreakdown(ctx context.Context, start, end time.Time) ([]reportdomain.MethodRow, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeReportService) Outstanding(ctx context.Context, asOf time.Time) ([]reportdomain.OutstandingRow, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeReportService) Aging(ctx context.Context, asOf time.Time) ([]reportdomain.AgingRow, error) {
	_ = ctx
	return nil, nil
}

func newReportTestServer(fake *fakeReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := NewServer(ServerParams{
		Gin:       r,
		Cfg:       config.Config{},
		ReportSvc: fake,
	})
	s.RegisterAPIRoutes()
	return r
}

func TestReportCustomRangeRejectedWith422(t *testing.T) {
	r := newReportTestServer(&fakeReportService{maxDays: 730})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/custom?start=2020-01-01&end=2026-01-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "range_too_wide", body.Error.Type)
}

func TestReportCustomRangeOK(t *testing.T) {
	fake := &fakeReportService{
		maxDays: 730,
		summary: reportdomain.Summary{TotalInvoices: 2, TotalAmount: 5000},
	}
	r := newReportTestServer(fake)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/custom?start=2026-01-01&end=2026-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary     reportdomain.Summary `json:"summary"`
		PeriodLabel string               `json:"period_label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Summary.TotalInvoices)
	assert.Equal(t, "2026-01-01 to 2026-01-31", body.PeriodLabel)
}

func TestReportMonthInvalidMonthIs400(t *testing.T) {
	r := newReportTestServer(&fakeReportService{maxDays: 730})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/month?year=2026&month=13", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportRangeParamsValidated(t *testing.T) {
	r := newReportTestServer(&fakeReportService{maxDays: 730})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/summary?start=notadate&end=2026-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
