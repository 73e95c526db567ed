package farm

import (
	"context"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService handles a farm's counterparty address book
type ContactService struct {
	contactRepo farm.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo farm.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// Create adds a contact to the farm
func (s *ContactService) Create(ctx context.Context, farmID, userID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := farm.NewContact(farmID, req.Name)
	if err != nil {
		return nil, err
	}
	contact.Phone = req.Phone
	contact.Email = req.Email
	contact.Notes = req.Notes
	contact.SetCreatedBy(userID)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	resp := ToContactResponse(contact)
	return &resp, nil
}

// Get retrieves a contact by ID
func (s *ContactService) Get(ctx context.Context, farmID, contactID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForFarm(ctx, farmID, contactID)
	if err != nil {
		return nil, err
	}
	resp := ToContactResponse(contact)
	return &resp, nil
}

// List lists a farm's contacts with pagination
func (s *ContactService) List(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (*shared.Paginated[ContactResponse], error) {
	contacts, err := s.contactRepo.FindAllForFarm(ctx, farmID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contactRepo.CountForFarm(ctx, farmID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, ToContactResponse(&contacts[i]))
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces a contact's details
func (s *ContactService) Update(ctx context.Context, farmID, contactID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForFarm(ctx, farmID, contactID)
	if err != nil {
		return nil, err
	}

	if err := contact.Update(req.Name, req.Phone, req.Email, req.Notes); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	resp := ToContactResponse(contact)
	return &resp, nil
}

// Delete removes a contact. Movements keep their contact reference as a
// dangling optional ID.
func (s *ContactService) Delete(ctx context.Context, farmID, contactID uuid.UUID) error {
	if _, err := s.contactRepo.FindByIDForFarm(ctx, farmID, contactID); err != nil {
		return err
	}
	return s.contactRepo.DeleteForFarm(ctx, farmID, contactID)
}
