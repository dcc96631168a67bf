package server

import (
	"net/http"
	"time"

	reportdomain "github.com/fitstack/clubledger/internal/report/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) parseRangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		AbortWithError(c, newValidationError("start", "invalid_start", "invalid start date"))
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		AbortWithError(c, newValidationError("end", "invalid_end", "invalid end date"))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (s *Server) ReportInvoicesInRange(c *gin.Context) {
	start, end, ok := s.parseRangeParams(c)
	if !ok {
		return
	}

	rows, err := s.reportSvc.InvoicesInRange(c.Request.Context(), start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rng := reportdomain.Normalize(start, end)
	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportSummaryInRange(c *gin.Context) {
	start, end, ok := s.parseRangeParams(c)
	if !ok {
		return
	}

	summary, err := s.reportSvc.SummaryInRange(c.Request.Context(), start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rng := reportdomain.Normalize(start, end)
	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportCustomRange(c *gin.Context) {
	start, end, ok := s.parseRangeParams(c)
	if !ok {
		return
	}

	inRange, rows, err := s.reportSvc.CustomRangeInvoices(c.Request.Context(), start, end)
	if !inRange || err != nil {
		AbortWithError(c, err)
		return
	}

	_, summary, err := s.reportSvc.CustomRangeSummary(c.Request.Context(), start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rng := reportdomain.Normalize(start, end)
	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportMonth(c *gin.Context) {
	year, err := parseInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}
	month, err := parseInt(c.Query("month"))
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}

	rows, rng, err := s.reportSvc.MonthInvoices(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	summary, _, err := s.reportSvc.MonthSummary(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportQuarter(c *gin.Context) {
	year, err := parseInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}
	q, err := parseInt(c.Query("q"))
	if err != nil {
		AbortWithError(c, newValidationError("q", "invalid_quarter", "invalid quarter"))
		return
	}

	summary, rng, err := s.reportSvc.QuarterSummary(c.Request.Context(), year, q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportHalfYear(c *gin.Context) {
	year, err := parseInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}
	h, err := parseInt(c.Query("h"))
	if err != nil {
		AbortWithError(c, newValidationError("h", "invalid_half", "invalid half"))
		return
	}

	summary, rng, err := s.reportSvc.HalfYearSummary(c.Request.Context(), year, h)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportYear(c *gin.Context) {
	year, err := parseInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	summary, rng, err := s.reportSvc.YearSummary(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportDailyCollections(c *gin.Context) {
	day, err := parseOptionalDate(c.Query("date"), time.Now().UTC())
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.reportSvc.DailyCollections(c.Request.Context(), day)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReportCollectionSummary(c *gin.Context) {
	start, end, ok := s.parseRangeParams(c)
	if !ok {
		return
	}

	rows, total, err := s.reportSvc.CollectionSummary(c.Request.Context(), start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rng := reportdomain.Normalize(start, end)
	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"total":        total,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportMethodBreakdown(c *gin.Context) {
	start, end, ok := s.parseRangeParams(c)
	if !ok {
		return
	}

	rows, err := s.reportSvc.MethodBreakdown(c.Request.Context(), start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rng := reportdomain.Normalize(start, end)
	c.JSON(http.StatusOK, gin.H{
		"rows":         rows,
		"period_label": rng.Label(),
	})
}

func (s *Server) ReportOutstanding(c *gin.Context) {
	asOf, err := parseOptionalDate(c.Query("as_of"), time.Now().UTC())
	if err != nil {
		AbortWithError(c, newValidationError("as_of", "invalid_as_of", "invalid as_of date"))
		return
	}

	rows, err := s.reportSvc.Outstanding(c.Request.Context(), asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) ReportAging(c *gin.Context) {
	asOf, err := parseOptionalDate(c.Query("as_of"), time.Now().UTC())
	if err != nil {
		AbortWithError(c, newValidationError("as_of", "invalid_as_of", "invalid as_of date"))
		return
	}

	rows, err := s.reportSvc.Aging(c.Request.Context(), asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "as_of": asOf.Format(dateOnlyLayout)})
}
