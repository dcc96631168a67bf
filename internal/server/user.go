package server

import (
	"net/http"
	"strings"

	userdomain "github.com/fitstack/clubledger/internal/user/domain"
	"github.com/fitstack/clubledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		FeeStatus string `form:"fee_status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	feeStatus := userdomain.FeeStatus(strings.TrimSpace(query.FeeStatus))
	if feeStatus != "" && feeStatus != userdomain.FeeStatusPaid && feeStatus != userdomain.FeeStatusUnpaid {
		AbortWithError(c, newValidationError("fee_status", "invalid_fee_status", "invalid fee status"))
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUsersRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		FeeStatus: feeStatus,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUser(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid user id"))
		return
	}

	resp, err := s.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setFeeStatusRequest struct {
	FeeStatus string `json:"fee_status"`
}

func (s *Server) SetUserFeeStatus(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid user id"))
		return
	}

	var req setFeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status := userdomain.FeeStatus(strings.TrimSpace(req.FeeStatus))
	if status != userdomain.FeeStatusPaid && status != userdomain.FeeStatusUnpaid {
		AbortWithError(c, newValidationError("fee_status", "invalid_fee_status", "invalid fee status"))
		return
	}

	if err := s.userSvc.SetFeeStatus(c.Request.Context(), id, status); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": id.String(), "fee_status": status}})
}
