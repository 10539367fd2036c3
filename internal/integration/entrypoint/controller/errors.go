// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		ctx.JSON(getStatusCodeForAnalyticsError(analyticsErr.Code), dto.ErrorResponse{
			Error: analyticsErr.Message,
			Code:  string(analyticsErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		response := dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		}
		if txnErr.Index >= 0 {
			response.Details = fmt.Sprintf("transactions[%d]", txnErr.Index)
		}
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), response)
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		ctx.JSON(getStatusCodeForEmailError(emailErr.Code), dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAnalyticsError maps analytics error codes to HTTP status codes.
func getStatusCodeForAnalyticsError(code domainerror.AnalyticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRange,
		domainerror.ErrCodeInvalidRangeDays,
		domainerror.ErrCodeMissingCustomRange,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidAmountRange,
		domainerror.ErrCodeInvalidQueryArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTransactionBatchTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeMissingTransactionDate,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeMissingAccountID,
		domainerror.ErrCodeInvalidSignConvention,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeEmptyTransactionBatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeMissingBudgetCategory,
		domainerror.ErrCodeInvalidBudgetPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForEmailError maps email error codes to HTTP status codes.
func getStatusCodeForEmailError(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeAlertRecipientMissing:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodePermanentEmailFailure,
		domainerror.ErrCodeTemporaryEmailFailure,
		domainerror.ErrCodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// invalidPayload writes the response for a request body that failed binding.
func invalidPayload(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeInvalidPayload),
		Details: err.Error(),
	})
}
