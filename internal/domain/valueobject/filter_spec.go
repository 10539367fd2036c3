// Package valueobject contains domain value objects for the analytics service.
package valueobject

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// RangeCustom selects the explicit CustomDateRange instead of a relative window.
const RangeCustom = "custom"

// AllCategories is the presentation-layer value meaning "no category restriction".
const AllCategories = "all"

// DefaultRangeDays is the window used when the caller does not pick one.
const DefaultRangeDays = 30

// CustomDateRange holds the raw ISO bounds of an explicit range.
type CustomDateRange struct {
	Start string
	End   string
}

// AmountRange bounds absolute transaction amounts. Nil bounds are open.
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// FilterSpec is the filter selection supplied by the presentation layer.
type FilterSpec struct {
	DateRange       string // Day count such as "30", or "custom"
	CustomDateRange *CustomDateRange
	Categories      []string
	Accounts        []string
	AmountRange     AmountRange
	SearchTerm      string
}

// Validate checks the parts of the spec that do not depend on the current date.
func (s FilterSpec) Validate() error {
	if s.AmountRange.Min != nil && s.AmountRange.Max != nil &&
		s.AmountRange.Min.GreaterThan(*s.AmountRange.Max) {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidAmountRange,
			"min_amount must not exceed max_amount",
			domainerror.ErrInvalidAmountRange,
		)
	}
	return nil
}

// Filter returns the non-temporal predicate described by the spec.
func (s FilterSpec) Filter() TransactionFilter {
	return TransactionFilter{
		Categories:  normalizeSet(s.Categories, true),
		Accounts:    normalizeSet(s.Accounts, false),
		AmountRange: s.AmountRange,
		SearchTerm:  strings.TrimSpace(s.SearchTerm),
	}
}

// TransactionFilter is the predicate applied to transactions besides the date dimension.
type TransactionFilter struct {
	Categories  []string
	Accounts    []string
	AmountRange AmountRange
	SearchTerm  string
}

// Matches reports whether the transaction satisfies every active criterion.
func (f TransactionFilter) Matches(tx *entity.Transaction) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, tx.Category) {
		return false
	}

	if len(f.Accounts) > 0 && !slices.Contains(f.Accounts, tx.AccountID) {
		return false
	}

	abs := tx.Amount.Abs()
	if f.AmountRange.Min != nil && abs.LessThan(*f.AmountRange.Min) {
		return false
	}
	if f.AmountRange.Max != nil && abs.GreaterThan(*f.AmountRange.Max) {
		return false
	}

	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(tx.Description), term) &&
			!strings.Contains(strings.ToLower(tx.MerchantName), term) &&
			!strings.Contains(strings.ToLower(tx.Category), term) {
			return false
		}
	}

	return true
}

// Key returns a deterministic representation of the filter, suitable for cache keys.
// Free-text values are quoted so separators inside a label cannot alias another filter.
func (f TransactionFilter) Key() string {
	var b strings.Builder
	b.WriteString("c=")
	writeQuoted(&b, f.Categories)
	b.WriteString("|a=")
	writeQuoted(&b, f.Accounts)
	b.WriteString("|min=")
	if f.AmountRange.Min != nil {
		b.WriteString(f.AmountRange.Min.String())
	}
	b.WriteString("|max=")
	if f.AmountRange.Max != nil {
		b.WriteString(f.AmountRange.Max.String())
	}
	b.WriteString("|q=")
	b.WriteString(strconv.Quote(strings.ToLower(f.SearchTerm)))
	return b.String()
}

func writeQuoted(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(v))
	}
}

// normalizeSet drops blanks, deduplicates and sorts the values.
// For categories, the "all" sentinel clears the restriction.
func normalizeSet(values []string, categories bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if categories && v == AllCategories {
			return nil
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

