package controller

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// parseFilterSpec reads the shared filter query parameters.
//
// The window is taken from the first non-empty of "range", "days" and "period";
// "custom" requires start_date and end_date. Categories and accounts accept
// repeated parameters as well as comma-separated lists.
func parseFilterSpec(ctx *gin.Context) (valueobject.FilterSpec, error) {
	spec := valueobject.FilterSpec{
		DateRange:  firstQuery(ctx, "range", "days", "period"),
		Categories: listQuery(ctx, "categories"),
		Accounts:   listQuery(ctx, "accounts"),
		SearchTerm: ctx.Query("search"),
	}

	if spec.DateRange == valueobject.RangeCustom {
		spec.CustomDateRange = &valueobject.CustomDateRange{
			Start: ctx.Query("start_date"),
			End:   ctx.Query("end_date"),
		}
	}

	var err error
	if spec.AmountRange.Min, err = decimalQuery(ctx, "min_amount"); err != nil {
		return valueobject.FilterSpec{}, err
	}
	if spec.AmountRange.Max, err = decimalQuery(ctx, "max_amount"); err != nil {
		return valueobject.FilterSpec{}, err
	}

	return spec, nil
}

func firstQuery(ctx *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(ctx.Query(key)); v != "" {
			return v
		}
	}
	return ""
}

func listQuery(ctx *gin.Context, key string) []string {
	var out []string
	for _, raw := range ctx.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func decimalQuery(ctx *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidQuery(key + " must be a number")
	}
	return &d, nil
}

func boolQuery(ctx *gin.Context, keys ...string) (bool, error) {
	raw := firstQuery(ctx, keys...)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidQuery(keys[0] + " must be true or false")
	}
	return v, nil
}

func intQuery(ctx *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidQuery(key + " must be an integer")
	}
	return v, nil
}

func invalidQuery(message string) error {
	return domainerror.NewAnalyticsError(
		domainerror.ErrCodeInvalidQueryArgument,
		message,
		domainerror.ErrInvalidQueryArgument,
	)
}
