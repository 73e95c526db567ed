package stock

import (
	"context"
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MedicationRepository defines the interface for medication persistence
type MedicationRepository interface {
	// FindByIDForFarm finds a medication by ID within a farm
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*Medication, error)

	// FindByIDWithEntries finds a medication with its entries preloaded,
	// ordered by expiry date ascending
	FindByIDWithEntries(ctx context.Context, farmID, id uuid.UUID) (*Medication, error)

	// FindAllForFarm finds all medications of a farm (entries preloaded)
	FindAllForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]Medication, error)

	// FindByNameForFarm finds a medication by exact name within a farm
	FindByNameForFarm(ctx context.Context, farmID uuid.UUID, name string) (*Medication, error)

	// Save creates or updates a medication
	Save(ctx context.Context, m *Medication) error

	// DeleteForFarm deletes a medication within a farm
	DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error

	// CountForFarm counts medications of a farm
	CountForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error)
}

// StockEntryRepository defines the interface for lot persistence.
//
// FindAvailableForUpdate is the allocator's read: it must take row-level
// write locks (SELECT ... FOR UPDATE) on every candidate lot so two
// concurrent withdrawals against the same medication serialize instead
// of both observing sufficient stock.
type StockEntryRepository interface {
	// FindByIDForFarm finds a stock entry by ID, verifying farm ownership
	// through its medication
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*StockEntry, error)

	// FindByMedication finds all entries of a medication ordered by
	// expiry date ascending, creation ascending
	FindByMedication(ctx context.Context, medicationID uuid.UUID) ([]StockEntry, error)

	// FindAvailableForUpdate finds entries with available stock for a
	// medication, locked for update, ordered by expiry date ascending
	FindAvailableForUpdate(ctx context.Context, medicationID uuid.UUID) ([]*StockEntry, error)

	// FindExpiringForFarm finds entries with available stock whose expiry
	// is on or before the limit date, across all of a farm's medications
	FindExpiringForFarm(ctx context.Context, farmID uuid.UUID, limit time.Time) ([]StockEntry, error)

	// Save creates or updates a stock entry
	Save(ctx context.Context, e *StockEntry) error

	// DeleteForFarm deletes a stock entry within a farm
	DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error

	// SumAvailableByMedication sums available quantity across a
	// medication's entries
	SumAvailableByMedication(ctx context.Context, medicationID uuid.UUID) (int64, error)
}

// WithdrawalRepository defines the interface for withdrawal persistence.
// Withdrawals are append-only audit records.
type WithdrawalRepository interface {
	// Create creates a new withdrawal record (no update allowed)
	Create(ctx context.Context, w *Withdrawal) error

	// FindByMedication finds withdrawals of a medication, newest first
	FindByMedication(ctx context.Context, medicationID uuid.UUID, filter shared.Filter) ([]Withdrawal, error)

	// FindByEntry finds withdrawals drawn from a specific lot
	FindByEntry(ctx context.Context, entryID uuid.UUID) ([]Withdrawal, error)

	// SumByEntry sums withdrawn quantity for a lot
	SumByEntry(ctx context.Context, entryID uuid.UUID) (int64, error)

	// CountByMedication counts withdrawals of a medication
	CountByMedication(ctx context.Context, medicationID uuid.UUID) (int64, error)
}
