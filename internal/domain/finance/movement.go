package finance

import (
	"strings"
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Movement is one receivable or payable of a farm: a total amount split
// into scheduled installments. Whether it is money in or out comes from
// its category's type.
type Movement struct {
	shared.FarmAggregateRoot
	CategoryID       uuid.UUID
	ContactID        *uuid.UUID // Optional counterparty
	TotalAmount      valueobject.Money
	InstallmentCount int
	IncomeTax        bool // Flagged for income tax reporting
	Description      string
	Date             time.Time // Movement (competence) date; first due date

	// Installments are generated atomically with the movement.
	Installments []Installment
}

// NewMovement creates a movement and generates its full installment
// schedule. The movement and all N installments are persisted in one
// transaction by the application layer: either all persist or none do.
func NewMovement(
	farmID, categoryID uuid.UUID,
	contactID *uuid.UUID,
	totalAmount valueobject.Money,
	installmentCount int,
	incomeTax bool,
	description string,
	date time.Time,
	createdBy uuid.UUID,
) (*Movement, error) {
	if farmID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FARM", "Farm ID cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Movement date is required")
	}

	m := &Movement{
		FarmAggregateRoot: shared.NewFarmAggregateRootWithCreator(farmID, createdBy),
		CategoryID:        categoryID,
		ContactID:         contactID,
		TotalAmount:       totalAmount.Round(2),
		InstallmentCount:  installmentCount,
		IncomeTax:         incomeTax,
		Description:       strings.TrimSpace(description),
		Date:              date,
	}

	installments, err := GenerateSchedule(m.ID, m.TotalAmount, installmentCount, date)
	if err != nil {
		return nil, err
	}
	m.Installments = installments

	return m, nil
}

// Regenerate rebuilds the installment schedule after the total, count or
// date changed. It refuses when any installment is already settled, so
// payment history is never silently discarded.
func (m *Movement) Regenerate(totalAmount valueobject.Money, installmentCount int, date time.Time) error {
	for i := range m.Installments {
		if m.Installments[i].IsPaid() {
			return shared.NewDomainError("INVALID_STATE", "Cannot regenerate installments after settlements")
		}
	}

	installments, err := GenerateSchedule(m.ID, totalAmount.Round(2), installmentCount, date)
	if err != nil {
		return err
	}

	m.TotalAmount = totalAmount.Round(2)
	m.InstallmentCount = installmentCount
	m.Date = date
	m.Installments = installments
	m.Touch()
	m.IncrementVersion()
	return nil
}

// InstallmentsTotal sums amount due across the schedule; always equals
// TotalAmount by construction.
func (m *Movement) InstallmentsTotal() valueobject.Money {
	total := valueobject.ZeroBRL()
	for i := range m.Installments {
		total = total.MustAdd(m.Installments[i].AmountDue)
	}
	return total
}

// OutstandingTotal sums amount due over pending installments
func (m *Movement) OutstandingTotal() valueobject.Money {
	total := valueobject.ZeroBRL()
	for i := range m.Installments {
		if !m.Installments[i].IsPaid() {
			total = total.MustAdd(m.Installments[i].AmountDue)
		}
	}
	return total
}

// IsSettled returns true once every installment is paid
func (m *Movement) IsSettled() bool {
	for i := range m.Installments {
		if !m.Installments[i].IsPaid() {
			return false
		}
	}
	return len(m.Installments) > 0
}
