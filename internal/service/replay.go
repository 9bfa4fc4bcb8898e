package service

import (
	"sort"
	"time"

	"github.com/ymoney/networth-backend/internal/model"
)

// ReplayCursor reconstructs the held quantity of an asset at successive
// dates by folding its ledger in date order.
//
// The cursor is built once over a date-sorted transaction slice and advanced
// monotonically by the daily reconstruction walk, so each transaction is
// visited exactly once across an entire date range: linear in transactions
// plus days, not quadratic.
type ReplayCursor struct {
	transactions []model.Transaction
	idx          int
	quantity     float64
}

// NewReplayCursor creates a cursor over the asset's transactions.
// The input is sorted by date if it is not already; the caller's slice is
// not modified.
func NewReplayCursor(transactions []model.Transaction) *ReplayCursor {
	sorted := transactions
	if !sort.SliceIsSorted(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	}) {
		sorted = make([]model.Transaction, len(transactions))
		copy(sorted, transactions)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
	}

	return &ReplayCursor{transactions: sorted}
}

// Advance applies every transaction dated on or before asOf and returns the
// resulting held quantity. Transactions dated exactly asOf are included.
//
// Advance is monotonic: calling it with a date earlier than a previous call
// applies nothing and returns the current quantity unchanged.
func (c *ReplayCursor) Advance(asOf time.Time) float64 {
	cutoff := dateOnly(asOf)
	for c.idx < len(c.transactions) && !dateOnly(c.transactions[c.idx].Date).After(cutoff) {
		c.quantity += c.transactions[c.idx].Amount
		c.idx++
	}
	return c.quantity
}

// Quantity returns the held quantity at the cursor's current position.
func (c *ReplayCursor) Quantity() float64 {
	return c.quantity
}

// QuantityAt returns the held quantity of an asset at an arbitrary date:
// the sum of all transaction amounts dated on or before asOf. With no
// transactions the quantity is 0 for every date; dates before the first
// transaction yield 0 or a negative quantity, both valid.
func QuantityAt(transactions []model.Transaction, asOf time.Time) float64 {
	return NewReplayCursor(transactions).Advance(asOf)
}

// dateOnly truncates a timestamp to its calendar day in UTC. All replay
// comparisons are day-granular; two events on the same day are both
// included when that day is queried.
func dateOnly(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
