package finance

import (
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of an installment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Installment is one scheduled part of a movement's total. The sum of
// AmountDue across a movement's installments always equals the movement
// total exactly.
type Installment struct {
	shared.BaseEntity
	MovementID  uuid.UUID
	Sequence    int // 1..N within the movement
	AmountDue   valueobject.Money
	DueDate     time.Time
	AmountPaid  valueobject.Money
	Status      PaymentStatus
	SettledDate *time.Time
}

// NewInstallment creates a pending installment. A zero amount is valid:
// splitting a sub-cent-per-installment total leaves trailing installments
// at 0.00.
func NewInstallment(movementID uuid.UUID, sequence int, amountDue valueobject.Money, dueDate time.Time) (*Installment, error) {
	if movementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement ID cannot be empty")
	}
	if sequence < 1 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Installment sequence starts at 1")
	}
	if amountDue.IsNegative() {
		return nil, &InvalidAmountError{Amount: amountDue.Amount()}
	}
	return &Installment{
		BaseEntity: shared.NewBaseEntity(),
		MovementID: movementID,
		Sequence:   sequence,
		AmountDue:  amountDue,
		DueDate:    dueDate,
		AmountPaid: valueobject.ZeroBRL(),
		Status:     PaymentStatusPending,
	}, nil
}

// IsPaid returns true if the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.Status == PaymentStatusPaid
}

// IsOverdue returns true if the installment is pending past its due date
func (i *Installment) IsOverdue(ref time.Time) bool {
	if i.IsPaid() {
		return false
	}
	due := time.Date(i.DueDate.Year(), i.DueDate.Month(), i.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	now := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(now)
}

// Settle marks the installment as paid. A nil amount defaults to the full
// amount due; a nil date defaults to today. Settling an already paid
// installment with the same amount is a no-op.
func (i *Installment) Settle(amountPaid *decimal.Decimal, settledDate *time.Time) error {
	amount := i.AmountDue
	if amountPaid != nil {
		if amountPaid.IsNegative() || amountPaid.IsZero() {
			return &InvalidAmountError{Amount: *amountPaid}
		}
		amount = valueobject.NewMoneyBRL(*amountPaid)
	}

	date := time.Now()
	if settledDate != nil {
		date = *settledDate
	}

	if i.IsPaid() && i.AmountPaid.Equal(amount) {
		return nil
	}

	i.Status = PaymentStatusPaid
	i.AmountPaid = amount
	i.SettledDate = &date
	i.Touch()
	return nil
}

// Reopen resets the installment to pending, zeroing the paid amount and
// clearing the settlement date. Reopening a pending installment is a no-op.
func (i *Installment) Reopen() {
	i.Status = PaymentStatusPending
	i.AmountPaid = valueobject.ZeroBRL()
	i.SettledDate = nil
	i.Touch()
}
