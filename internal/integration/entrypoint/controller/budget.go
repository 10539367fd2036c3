package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/budget"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// BudgetController handles budget ceiling endpoints.
type BudgetController struct {
	listUseCase   *budget.ListBudgetsUseCase
	upsertUseCase *budget.UpsertBudgetUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	upsertUseCase *budget.UpsertBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:   listUseCase,
		upsertUseCase: upsertUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Upsert handles PUT /budgets requests.
func (c *BudgetController) Upsert(ctx *gin.Context) {
	var req dto.UpsertBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}

	input := budget.UpsertBudgetInput{
		Category: req.Category,
		Amount:   *req.Amount,
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:category requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ctx.Param("category")); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
