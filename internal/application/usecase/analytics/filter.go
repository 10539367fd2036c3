package analytics

import (
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// Apply returns the transactions matching f and, when r is set, falling inside r.
// The input slice is never modified.
func Apply(txs []*entity.Transaction, f valueobject.TransactionFilter, r *valueobject.DateRange) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if r != nil && !r.Contains(tx.Date) {
			continue
		}
		if !f.Matches(tx) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// inRange returns the transactions whose calendar day falls inside r.
func inRange(txs []*entity.Transaction, r valueobject.DateRange) []*entity.Transaction {
	return Apply(txs, valueobject.TransactionFilter{}, &r)
}
