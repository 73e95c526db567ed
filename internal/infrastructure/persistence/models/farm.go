package models

import (
	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/google/uuid"
)

// FarmModel is the persistence model for the Farm aggregate root
type FarmModel struct {
	AggregateModel
	Name        string    `gorm:"type:varchar(255);not null"`
	City        string    `gorm:"type:varchar(255)"`
	State       string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Active      bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (FarmModel) TableName() string {
	return "farms"
}

// ToDomain converts the persistence model to a domain Farm
func (m *FarmModel) ToDomain() *farm.Farm {
	return &farm.Farm{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		City:              m.City,
		State:             m.State,
		Description:       m.Description,
		OwnerID:           m.OwnerID,
		Active:            m.Active,
	}
}

// FarmModelFromDomain creates a persistence model from a domain Farm
func FarmModelFromDomain(f *farm.Farm) *FarmModel {
	m := &FarmModel{
		Name:        f.Name,
		City:        f.City,
		State:       f.State,
		Description: f.Description,
		OwnerID:     f.OwnerID,
		Active:      f.Active,
	}
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	return m
}

// ContactModel is the persistence model for Contact
type ContactModel struct {
	FarmAggregateModel
	Name  string `gorm:"type:varchar(255);not null;index"`
	Phone string `gorm:"type:varchar(50)"`
	Email string `gorm:"type:varchar(255)"`
	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *farm.Contact {
	return &farm.Contact{
		FarmAggregateRoot: m.ToDomainFarmAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Notes:             m.Notes,
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact
func ContactModelFromDomain(c *farm.Contact) *ContactModel {
	m := &ContactModel{
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
		Notes: c.Notes,
	}
	m.FromDomainFarmAggregateRoot(c.FarmAggregateRoot)
	return m
}
