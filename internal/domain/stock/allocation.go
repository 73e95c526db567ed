package stock

import (
	"sort"
)

// Allocation is one planned deduction against a single lot.
type Allocation struct {
	Entry    *StockEntry
	Quantity int64
}

// WithdrawalPlan is the result of allocating a requested quantity across
// a medication's lots in expiry order.
type WithdrawalPlan struct {
	Allocations []Allocation
	Total       int64
}

// SortEntriesByExpiry orders lots for allocation: earliest expiry first,
// ties broken by insertion order (creation time, then ID for stability).
func SortEntriesByExpiry(entries []*StockEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].ExpiryDate.Equal(entries[j].ExpiryDate) {
			return entries[i].ExpiryDate.Before(entries[j].ExpiryDate)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

// PlanWithdrawal allocates the requested quantity across the given lots,
// consuming the earliest-expiring lot first. It only plans; nothing is
// mutated. The caller applies the plan inside a transaction.
//
// The whole request fails with InsufficientStockError when the combined
// available stock cannot cover it, so a failed withdrawal is a no-op.
func PlanWithdrawal(entries []*StockEntry, quantity int64) (*WithdrawalPlan, error) {
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}

	candidates := make([]*StockEntry, 0, len(entries))
	var available int64
	for _, e := range entries {
		if e.QuantityAvailable > 0 {
			candidates = append(candidates, e)
			available += e.QuantityAvailable
		}
	}

	if available < quantity {
		return nil, &InsufficientStockError{Requested: quantity, Available: available}
	}

	SortEntriesByExpiry(candidates)

	plan := &WithdrawalPlan{Allocations: make([]Allocation, 0, len(candidates))}
	remaining := quantity
	for _, e := range candidates {
		if remaining == 0 {
			break
		}
		take := e.QuantityAvailable
		if take > remaining {
			take = remaining
		}
		plan.Allocations = append(plan.Allocations, Allocation{Entry: e, Quantity: take})
		plan.Total += take
		remaining -= take
	}

	return plan, nil
}
