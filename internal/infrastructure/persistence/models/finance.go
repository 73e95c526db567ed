package models

import (
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for a finance Category
type CategoryModel struct {
	FarmAggregateModel
	Name string               `gorm:"type:varchar(255);not null;index"`
	Type finance.CategoryType `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "finance_categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *finance.Category {
	return &finance.Category{
		FarmAggregateRoot: m.ToDomainFarmAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *finance.Category) *CategoryModel {
	m := &CategoryModel{
		Name: c.Name,
		Type: c.Type,
	}
	m.FromDomainFarmAggregateRoot(c.FarmAggregateRoot)
	return m
}

// MovementModel is the persistence model for the Movement aggregate.
// Installments are persisted as part of the aggregate.
type MovementModel struct {
	FarmAggregateModel
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContactID        *uuid.UUID      `gorm:"type:uuid;index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InstallmentCount int             `gorm:"not null"`
	IncomeTax        bool            `gorm:"not null;default:false"`
	Description      string          `gorm:"type:text"`
	Date             time.Time       `gorm:"not null;index"`

	Installments []InstallmentModel `gorm:"foreignKey:MovementID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "finance_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *MovementModel) ToDomain() *finance.Movement {
	installments := make([]finance.Installment, len(m.Installments))
	for i := range m.Installments {
		installments[i] = *m.Installments[i].ToDomain()
	}
	return &finance.Movement{
		FarmAggregateRoot: m.ToDomainFarmAggregateRoot(),
		CategoryID:        m.CategoryID,
		ContactID:         m.ContactID,
		TotalAmount:       valueobject.NewMoneyBRL(m.TotalAmount),
		InstallmentCount:  m.InstallmentCount,
		IncomeTax:         m.IncomeTax,
		Description:       m.Description,
		Date:              m.Date,
		Installments:      installments,
	}
}

// MovementModelFromDomain creates a persistence model from a domain
// Movement, schedule included.
func MovementModelFromDomain(mv *finance.Movement) *MovementModel {
	m := &MovementModel{
		CategoryID:       mv.CategoryID,
		ContactID:        mv.ContactID,
		TotalAmount:      mv.TotalAmount.Amount(),
		InstallmentCount: mv.InstallmentCount,
		IncomeTax:        mv.IncomeTax,
		Description:      mv.Description,
		Date:             mv.Date,
	}
	m.FromDomainFarmAggregateRoot(mv.FarmAggregateRoot)
	m.Installments = make([]InstallmentModel, len(mv.Installments))
	for i := range mv.Installments {
		m.Installments[i] = *InstallmentModelFromDomain(&mv.Installments[i])
	}
	return m
}

// InstallmentModel is the persistence model for an Installment
type InstallmentModel struct {
	BaseModel
	MovementID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Sequence    int                   `gorm:"not null"`
	AmountDue   decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	DueDate     time.Time             `gorm:"not null;index"`
	AmountPaid  decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status      finance.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	SettledDate *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "finance_installments"
}

// ToDomain converts the persistence model to a domain Installment
func (m *InstallmentModel) ToDomain() *finance.Installment {
	return &finance.Installment{
		BaseEntity:  m.ToDomainBaseEntity(),
		MovementID:  m.MovementID,
		Sequence:    m.Sequence,
		AmountDue:   valueobject.NewMoneyBRL(m.AmountDue),
		DueDate:     m.DueDate,
		AmountPaid:  valueobject.NewMoneyBRL(m.AmountPaid),
		Status:      m.Status,
		SettledDate: m.SettledDate,
	}
}

// InstallmentModelFromDomain creates a persistence model from a domain Installment
func InstallmentModelFromDomain(i *finance.Installment) *InstallmentModel {
	m := &InstallmentModel{
		MovementID:  i.MovementID,
		Sequence:    i.Sequence,
		AmountDue:   i.AmountDue.Amount(),
		DueDate:     i.DueDate,
		AmountPaid:  i.AmountPaid.Amount(),
		Status:      i.Status,
		SettledDate: i.SettledDate,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
