package farm

import (
	"time"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/google/uuid"
)

// CreateFarmRequest represents a request to register a farm
type CreateFarmRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	City        string `json:"city" binding:"max=255"`
	State       string `json:"state" binding:"max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateFarmRequest represents a request to update farm details
type UpdateFarmRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	City        string `json:"city" binding:"max=255"`
	State       string `json:"state" binding:"max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// FarmResponse represents a farm in API responses
type FarmResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContactRequest represents a request to create or update a contact
type ContactRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Phone string `json:"phone" binding:"max=50"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Notes string `json:"notes" binding:"max=1000"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	FarmID    uuid.UUID `json:"farm_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToFarmResponse maps a farm to its response
func ToFarmResponse(f *farm.Farm) FarmResponse {
	return FarmResponse{
		ID:          f.ID,
		Name:        f.Name,
		City:        f.City,
		State:       f.State,
		Description: f.Description,
		OwnerID:     f.OwnerID,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ToContactResponse maps a contact to its response
func ToContactResponse(c *farm.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FarmID:    c.FarmID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
