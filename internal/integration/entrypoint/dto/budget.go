package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// UpsertBudgetRequest represents the request body for setting a budget ceiling.
type UpsertBudgetRequest struct {
	Category string           `json:"category" binding:"required,min=1,max=255"`
	Amount   *decimal.Decimal `json:"amount" binding:"required"`
	Period   *string          `json:"period,omitempty" binding:"omitempty,oneof=weekly monthly yearly"`
}

// BudgetResponse represents a budget ceiling in API responses.
type BudgetResponse struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Period    string  `json:"period"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budget ceilings.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        budget.ID.String(),
		Category:  budget.Category,
		Amount:    toFloat(budget.Amount),
		Period:    string(budget.Period),
		CreatedAt: budget.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: budget.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToBudgetListResponse converts budgets to a BudgetListResponse DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	response := BudgetListResponse{
		Budgets: make([]BudgetResponse, len(budgets)),
	}
	for i, budget := range budgets {
		response.Budgets[i] = ToBudgetResponse(budget)
	}
	return response
}
