package models

import (
	"time"

	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedicationModel is the persistence model for the Medication aggregate
type MedicationModel struct {
	FarmAggregateModel
	Name string `gorm:"type:varchar(255);not null;index"`

	Entries []StockEntryModel `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MedicationModel) TableName() string {
	return "medications"
}

// ToDomain converts the persistence model to a domain Medication
func (m *MedicationModel) ToDomain() *stock.Medication {
	entries := make([]stock.StockEntry, len(m.Entries))
	for i := range m.Entries {
		entries[i] = *m.Entries[i].ToDomain()
	}
	return &stock.Medication{
		FarmAggregateRoot: m.ToDomainFarmAggregateRoot(),
		Name:              m.Name,
		Entries:           entries,
	}
}

// MedicationModelFromDomain creates a persistence model from a domain Medication.
// Entries are not included; lots are persisted through their own repository.
func MedicationModelFromDomain(med *stock.Medication) *MedicationModel {
	m := &MedicationModel{
		Name: med.Name,
	}
	m.FromDomainFarmAggregateRoot(med.FarmAggregateRoot)
	return m
}

// StockEntryModel is the persistence model for a medication lot
type StockEntryModel struct {
	BaseModel
	MedicationID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity          int64           `gorm:"not null"`
	QuantityAvailable int64           `gorm:"not null;index"`
	ExpiryDate        time.Time       `gorm:"not null;index"`
	TotalValue        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Note              string          `gorm:"type:varchar(500)"`
	RecordedBy        uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockEntryModel) TableName() string {
	return "stock_entries"
}

// ToDomain converts the persistence model to a domain StockEntry
func (m *StockEntryModel) ToDomain() *stock.StockEntry {
	return &stock.StockEntry{
		BaseEntity:        m.ToDomainBaseEntity(),
		MedicationID:      m.MedicationID,
		Quantity:          m.Quantity,
		QuantityAvailable: m.QuantityAvailable,
		ExpiryDate:        m.ExpiryDate,
		TotalValue:        valueobject.NewMoneyBRL(m.TotalValue),
		Note:              m.Note,
		RecordedBy:        m.RecordedBy,
	}
}

// StockEntryModelFromDomain creates a persistence model from a domain StockEntry
func StockEntryModelFromDomain(e *stock.StockEntry) *StockEntryModel {
	m := &StockEntryModel{
		MedicationID:      e.MedicationID,
		Quantity:          e.Quantity,
		QuantityAvailable: e.QuantityAvailable,
		ExpiryDate:        e.ExpiryDate,
		TotalValue:        e.TotalValue.Amount(),
		Note:              e.Note,
		RecordedBy:        e.RecordedBy,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// WithdrawalModel is the persistence model for a withdrawal audit record
type WithdrawalModel struct {
	BaseModel
	MedicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int64     `gorm:"not null"`
	Reason       string    `gorm:"type:varchar(500)"`
	RecordedBy   uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (WithdrawalModel) TableName() string {
	return "stock_withdrawals"
}

// ToDomain converts the persistence model to a domain Withdrawal
func (m *WithdrawalModel) ToDomain() *stock.Withdrawal {
	return &stock.Withdrawal{
		BaseEntity:   m.ToDomainBaseEntity(),
		MedicationID: m.MedicationID,
		EntryID:      m.EntryID,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		RecordedBy:   m.RecordedBy,
	}
}

// WithdrawalModelFromDomain creates a persistence model from a domain Withdrawal
func WithdrawalModelFromDomain(w *stock.Withdrawal) *WithdrawalModel {
	m := &WithdrawalModel{
		MedicationID: w.MedicationID,
		EntryID:      w.EntryID,
		Quantity:     w.Quantity,
		Reason:       w.Reason,
		RecordedBy:   w.RecordedBy,
	}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}
