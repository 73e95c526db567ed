package stock

import (
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Withdrawal is the audit record of one allocation against one lot.
// A single withdrawal request produces one record per lot touched.
// Withdrawals are immutable once created.
type Withdrawal struct {
	shared.BaseEntity
	MedicationID uuid.UUID
	EntryID      uuid.UUID
	Quantity     int64
	Reason       string
	RecordedBy   uuid.UUID
}

// NewWithdrawal creates a withdrawal record for a lot
func NewWithdrawal(medicationID, entryID uuid.UUID, quantity int64, reason string, recordedBy uuid.UUID) (*Withdrawal, error) {
	if medicationID == uuid.Nil || entryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Withdrawal requires medication and entry references")
	}
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}
	return &Withdrawal{
		BaseEntity:   shared.NewBaseEntity(),
		MedicationID: medicationID,
		EntryID:      entryID,
		Quantity:     quantity,
		Reason:       reason,
		RecordedBy:   recordedBy,
	}, nil
}
