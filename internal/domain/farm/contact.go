package farm

import (
	"strings"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Contact is a counterparty of a financial movement (buyer, supplier,
// service provider). Contacts are scoped to one farm.
type Contact struct {
	shared.FarmAggregateRoot
	Name  string
	Phone string
	Email string
	Notes string
}

// NewContact creates a new contact for the given farm
func NewContact(farmID uuid.UUID, name string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if farmID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FARM", "Farm ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	return &Contact{
		FarmAggregateRoot: shared.NewFarmAggregateRoot(farmID),
		Name:              name,
	}, nil
}

// Update replaces the contact's mutable fields
func (c *Contact) Update(name, phone, email, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
	return nil
}
