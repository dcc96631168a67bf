package server

import (
	"net/http"
	"strings"
	"time"

	receivabledomain "github.com/fitstack/clubledger/internal/receivable/domain"
	"github.com/gin-gonic/gin"
)

type createReceivableRequest struct {
	UserID         string     `json:"user_id"`
	ReceivableType string     `json:"receivable_type"`
	SourceID       string     `json:"source_id"`
	BillAmount     int64      `json:"bill_amount"`
	DiscountAmount int64      `json:"discount_amount"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

func (s *Server) CreateReceivable(c *gin.Context) {
	var req createReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := parseSnowflakeID(req.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}
	sourceID, err := parseSnowflakeID(req.SourceID)
	if err != nil {
		AbortWithError(c, newValidationError("source_id", "invalid_source_id", "invalid source id"))
		return
	}

	resp, err := s.receivableSvc.CreateReceivable(c.Request.Context(), receivabledomain.CreateReceivableRequest{
		UserID:         userID,
		ReceivableType: receivabledomain.ReceivableType(strings.TrimSpace(req.ReceivableType)),
		SourceID:       sourceID,
		BillAmount:     req.BillAmount,
		DiscountAmount: req.DiscountAmount,
		DueDate:        req.DueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type paymentLineRequest struct {
	Method    string `json:"method"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

type recordTransactionsRequest struct {
	Lines     []paymentLineRequest `json:"lines"`
	CreatedBy string               `json:"created_by"`
}

func (s *Server) RecordTransactions(c *gin.Context) {
	receivableID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid receivable id"))
		return
	}

	var req recordTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createdBy, err := parseOptionalSnowflakeID(req.CreatedBy)
	if err != nil {
		AbortWithError(c, newValidationError("created_by", "invalid_created_by", "invalid created_by id"))
		return
	}

	lines := make([]receivabledomain.PaymentLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, receivabledomain.PaymentLine{
			Method:    receivabledomain.PaymentMethod(strings.TrimSpace(line.Method)),
			Amount:    line.Amount,
			Reference: strings.TrimSpace(line.Reference),
		})
	}

	resp, err := s.receivableSvc.RecordPaymentLines(c.Request.Context(), receivableID, lines, createdBy)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceivableBalance(c *gin.Context) {
	receivableID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid receivable id"))
		return
	}

	resp, err := s.receivableSvc.GetBalance(c.Request.Context(), receivableID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceivableBreakdown(c *gin.Context) {
	receivableID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid receivable id"))
		return
	}

	resp, err := s.receivableSvc.GetBreakdown(c.Request.Context(), receivableID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceivableBySource(c *gin.Context) {
	receivableType := receivabledomain.ReceivableType(strings.TrimSpace(c.Query("type")))
	sourceID, err := parseSnowflakeID(c.Query("source_id"))
	if err != nil {
		AbortWithError(c, newValidationError("source_id", "invalid_source_id", "invalid source id"))
		return
	}

	resp, err := s.receivableSvc.GetBySource(c.Request.Context(), receivableType, sourceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOverdueReceivables(c *gin.Context) {
	asOf, err := parseOptionalDate(c.Query("as_of"), time.Now().UTC())
	if err != nil {
		AbortWithError(c, newValidationError("as_of", "invalid_as_of", "invalid as_of date"))
		return
	}

	resp, err := s.receivableSvc.ListOverdue(c.Request.Context(), asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReverseTransaction(c *gin.Context) {
	transactionID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid transaction id"))
		return
	}

	if err := s.receivableSvc.ReverseTransaction(c.Request.Context(), transactionID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"transaction_id": transactionID.String(), "reversed": true}})
}

func (s *Server) RecomputeReceivableStatus(c *gin.Context) {
	receivableID, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid receivable id"))
		return
	}

	status, err := s.receivableSvc.RecomputeStatus(c.Request.Context(), receivableID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"receivable_id": receivableID.String(), "status": status}})
}
