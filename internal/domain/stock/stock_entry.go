package stock

import (
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// StockEntry represents one received lot of a medication with its own
// expiry date. Quantity is the immutable received amount; QuantityAvailable
// decreases as withdrawals consume the lot.
//
// Invariant: 0 <= QuantityAvailable <= Quantity.
type StockEntry struct {
	shared.BaseEntity
	MedicationID      uuid.UUID
	Quantity          int64 // Units received, immutable after creation
	QuantityAvailable int64 // Units still in stock
	ExpiryDate        time.Time
	TotalValue        valueobject.Money // Purchase value of the whole lot
	Note              string
	RecordedBy        uuid.UUID
}

// NewStockEntry creates a new lot; the full received quantity starts available
func NewStockEntry(
	medicationID uuid.UUID,
	quantity int64,
	expiryDate time.Time,
	totalValue valueobject.Money,
	note string,
	recordedBy uuid.UUID,
) (*StockEntry, error) {
	if medicationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDICATION", "Medication ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}
	if expiryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}
	if totalValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Lot value cannot be negative")
	}
	return &StockEntry{
		BaseEntity:        shared.NewBaseEntity(),
		MedicationID:      medicationID,
		Quantity:          quantity,
		QuantityAvailable: quantity,
		ExpiryDate:        expiryDate,
		TotalValue:        totalValue,
		Note:              note,
		RecordedBy:        recordedBy,
	}, nil
}

// HasStock returns true if the lot still has available quantity
func (e *StockEntry) HasStock() bool {
	return e.QuantityAvailable > 0
}

// IsDepleted returns true once the lot is fully consumed
func (e *StockEntry) IsDepleted() bool {
	return e.QuantityAvailable == 0
}

// Deduct removes quantity from the lot. The caller must have planned the
// amount; deducting more than available is a programming error surfaced
// as a domain error rather than silently clamping.
func (e *StockEntry) Deduct(quantity int64) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	if quantity > e.QuantityAvailable {
		return &InsufficientStockError{Requested: quantity, Available: e.QuantityAvailable}
	}
	e.QuantityAvailable -= quantity
	e.Touch()
	return nil
}

// Restore returns quantity to the lot (withdrawal reversal), never
// exceeding the received amount.
func (e *StockEntry) Restore(quantity int64) error {
	if quantity <= 0 {
		return &InvalidQuantityError{Quantity: quantity}
	}
	if e.QuantityAvailable+quantity > e.Quantity {
		return shared.NewDomainError("INVALID_RESTORE", "Restore would exceed received quantity")
	}
	e.QuantityAvailable += quantity
	e.Touch()
	return nil
}

// DaysToExpiry returns whole days between the reference date and the
// lot's expiry date; negative when already expired.
func (e *StockEntry) DaysToExpiry(ref time.Time) int {
	return DaysBetween(ref, e.ExpiryDate)
}

// IsExpired returns true if the lot's expiry date is before the reference date
func (e *StockEntry) IsExpired(ref time.Time) bool {
	return e.DaysToExpiry(ref) < 0
}
