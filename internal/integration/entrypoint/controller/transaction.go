package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/transaction"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	importUseCase *transaction.ImportTransactionsUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	importUseCase *transaction.ImportTransactionsUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		importUseCase: importUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
	}
}

// Import handles POST /transactions/import requests.
func (c *TransactionController) Import(ctx *gin.Context) {
	var req dto.ImportTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), req.ToImportTransactionsInput())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ImportTransactionsResponse{
		Imported: output.Imported,
		Version:  output.Version,
	})
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := transaction.ListTransactionsInput{
		Filter: filter,
	}

	// Parse pagination
	if input.Page, err = intQuery(ctx, "page"); err != nil {
		handleError(ctx, err)
		return
	}
	if input.Limit, err = intQuery(ctx, "limit"); err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	txn, err := c.getUseCase.Execute(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
