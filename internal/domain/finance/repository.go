package finance

import (
	"context"
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByIDForFarm finds a category by ID within a farm
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*Category, error)

	// FindAllForFarm finds all categories of a farm, optionally by type
	FindAllForFarm(ctx context.Context, farmID uuid.UUID, categoryType *CategoryType, filter shared.Filter) ([]Category, error)

	// ExistsByNameAndType checks the per-farm (name, type) uniqueness rule
	ExistsByNameAndType(ctx context.Context, farmID uuid.UUID, name string, categoryType CategoryType) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, c *Category) error

	// DeleteForFarm deletes a category within a farm
	DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error
}

// MovementRepository defines the interface for movement persistence.
// Saving a movement persists its installments through the aggregate.
type MovementRepository interface {
	// FindByIDForFarm finds a movement with installments preloaded
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*Movement, error)

	// FindAllForFarm finds movements of a farm, optionally filtered by
	// category type and date range
	FindAllForFarm(ctx context.Context, farmID uuid.UUID, f MovementFilter) ([]Movement, error)

	// Save creates or updates a movement together with its installments
	Save(ctx context.Context, m *Movement) error

	// DeleteForFarm deletes a movement and its installments within a farm
	DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error

	// CountForFarm counts movements matching the filter
	CountForFarm(ctx context.Context, farmID uuid.UUID, f MovementFilter) (int64, error)
}

// InstallmentRepository defines the interface for installment persistence
type InstallmentRepository interface {
	// FindByIDForFarm finds an installment, verifying farm ownership
	// through its movement
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*Installment, error)

	// FindByMovement finds all installments of a movement in sequence order
	FindByMovement(ctx context.Context, movementID uuid.UUID) ([]Installment, error)

	// FindPendingByType finds pending installments of a farm whose
	// movement category has the given type, ordered by due date
	FindPendingByType(ctx context.Context, farmID uuid.UUID, categoryType CategoryType, filter shared.Filter) ([]Installment, error)

	// Save updates a single installment (settlement state changes)
	Save(ctx context.Context, i *Installment) error
}

// MovementFilter narrows movement queries
type MovementFilter struct {
	shared.Filter
	CategoryID   *uuid.UUID
	CategoryType *CategoryType
	ContactID    *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
}

// FinanceReportRepository provides the read-side aggregations backing
// dashboards and reports. All sums are over installment amount due (or
// amount paid for settled series) and are exact decimal arithmetic.
type FinanceReportRepository interface {
	// SumDueByType sums amount due over installments of the farm whose
	// movement category has the given type, optionally restricted to one
	// payment status and optionally bounded by due date. A nil status
	// sums over every installment regardless of settlement.
	SumDueByType(ctx context.Context, farmID uuid.UUID, categoryType CategoryType, status *PaymentStatus, start, end *time.Time) (decimal.Decimal, error)

	// SumPaidByType sums amount paid over settled installments whose
	// settlement date falls in the half-open window [start, end)
	SumPaidByType(ctx context.Context, farmID uuid.UUID, categoryType CategoryType, start, end time.Time) (decimal.Decimal, error)

	// SumDueByCategory sums amount due per category over a due-date range
	SumDueByCategory(ctx context.Context, farmID uuid.UUID, categoryType CategoryType, start, end time.Time) ([]CategoryTotal, error)
}

// CategoryTotal is one row of a per-category aggregation
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}
