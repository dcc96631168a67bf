package server

import (
	"errors"
	"net/http"

	invoicedomain "github.com/fitstack/clubledger/internal/invoice/domain"
	receivabledomain "github.com/fitstack/clubledger/internal/receivable/domain"
	reportdomain "github.com/fitstack/clubledger/internal/report/domain"
	userdomain "github.com/fitstack/clubledger/internal/user/domain"
	"github.com/gin-gonic/gin"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts errors attached to the gin context into
// a JSON error body after the handler chain runs.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

var validationSentinels = []error{
	receivabledomain.ErrInvalidBillAmount,
	receivabledomain.ErrInvalidDiscount,
	receivabledomain.ErrInvalidAmount,
	receivabledomain.ErrInvalidMethod,
	receivabledomain.ErrInvalidType,
	receivabledomain.ErrInvalidID,
	receivabledomain.ErrNoPaymentLines,
	invoicedomain.ErrInvalidID,
	invoicedomain.ErrNoItems,
	invoicedomain.ErrInvalidItem,
	userdomain.ErrInvalidID,
	userdomain.ErrInvalidName,
	userdomain.ErrInvalidPageToken,
	reportdomain.ErrInvalidMonth,
	reportdomain.ErrInvalidQuarter,
	reportdomain.ErrInvalidHalf,
	reportdomain.ErrInvalidYear,
}

var notFoundSentinels = []error{
	receivabledomain.ErrNotFound,
	invoicedomain.ErrNotFound,
	userdomain.ErrNotFound,
}

var conflictSentinels = []error{
	receivabledomain.ErrDuplicateSource,
	invoicedomain.ErrAlreadyPaid,
	invoicedomain.ErrNotPayable,
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, errorPayload{
				Type:    "validation_error",
				Message: "validation error",
				Errors: []ValidationError{
					{Field: "request", Code: sentinel.Error(), Message: sentinel.Error()},
				},
			}
		}
	}

	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusNotFound, errorPayload{
				Type:    "not_found",
				Message: "resource not found",
			}
		}
	}

	for _, sentinel := range conflictSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusConflict, errorPayload{
				Type:    "conflict",
				Message: sentinel.Error(),
			}
		}
	}

	if errors.Is(err, reportdomain.ErrRangeTooWide) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "range_too_wide",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
