package stock

import (
	"strings"
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Medication is a catalog entry for a veterinary medication held in a
// farm's stock. It is the aggregate root for stock operations; actual
// quantities live in its stock entries (lots).
//
// A medication with zero total stock remains in the catalog so it can be
// restocked later without re-registering.
type Medication struct {
	shared.FarmAggregateRoot
	Name string

	// Entries are the medication's lots, loaded ordered by expiry date.
	Entries []StockEntry
}

// NewMedication creates a new medication catalog entry for a farm
func NewMedication(farmID uuid.UUID, name string) (*Medication, error) {
	name = strings.TrimSpace(name)
	if farmID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FARM", "Farm ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Medication name cannot be empty")
	}
	return &Medication{
		FarmAggregateRoot: shared.NewFarmAggregateRoot(farmID),
		Name:              name,
		Entries:           make([]StockEntry, 0),
	}, nil
}

// Rename changes the medication name
func (m *Medication) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Medication name cannot be empty")
	}
	m.Name = name
	m.Touch()
	m.IncrementVersion()
	return nil
}

// TotalAvailable returns the sum of available quantity across all entries
func (m *Medication) TotalAvailable() int64 {
	var total int64
	for i := range m.Entries {
		total += m.Entries[i].QuantityAvailable
	}
	return total
}

// TotalReceived returns the sum of received quantity across all entries
func (m *Medication) TotalReceived() int64 {
	var total int64
	for i := range m.Entries {
		total += m.Entries[i].Quantity
	}
	return total
}

// TotalValue returns the summed purchase value of all entries. Entry
// values are always BRL, so the additions cannot fail.
func (m *Medication) TotalValue() valueobject.Money {
	total := valueobject.ZeroBRL()
	for i := range m.Entries {
		total = total.MustAdd(m.Entries[i].TotalValue)
	}
	return total
}

// EntryCount returns the number of lots recorded for the medication
func (m *Medication) EntryCount() int {
	return len(m.Entries)
}

// NearestExpiry returns the earliest expiry date among entries that still
// have available stock, or nil when the medication is fully depleted.
func (m *Medication) NearestExpiry() *time.Time {
	var nearest *time.Time
	for i := range m.Entries {
		e := &m.Entries[i]
		if e.QuantityAvailable <= 0 {
			continue
		}
		if nearest == nil || e.ExpiryDate.Before(*nearest) {
			d := e.ExpiryDate
			nearest = &d
		}
	}
	return nearest
}
