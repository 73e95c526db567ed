package stock

import (
	"context"

	"github.com/farmledger/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
//
// The withdrawal path depends on this: candidate lots are read with row
// locks inside the scope, so concurrent withdrawals against the same
// medication serialize and can never both deduct the last units.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to stock repositories sharing
// the same underlying transaction.
type TransactionalRepositories interface {
	// MedicationRepo returns the medication repository scoped to the
	// current transaction
	MedicationRepo() stock.MedicationRepository
	// EntryRepo returns the stock entry repository scoped to the current
	// transaction
	EntryRepo() stock.StockEntryRepository
	// WithdrawalRepo returns the withdrawal repository scoped to the
	// current transaction
	WithdrawalRepo() stock.WithdrawalRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	medicationRepo stock.MedicationRepository
	entryRepo      stock.StockEntryRepository
	withdrawalRepo stock.WithdrawalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	medicationRepo stock.MedicationRepository,
	entryRepo stock.StockEntryRepository,
	withdrawalRepo stock.WithdrawalRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		medicationRepo: medicationRepo,
		entryRepo:      entryRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MedicationRepo returns the medication repository
func (s *NoOpTransactionScope) MedicationRepo() stock.MedicationRepository {
	return s.medicationRepo
}

// EntryRepo returns the stock entry repository
func (s *NoOpTransactionScope) EntryRepo() stock.StockEntryRepository {
	return s.entryRepo
}

// WithdrawalRepo returns the withdrawal repository
func (s *NoOpTransactionScope) WithdrawalRepo() stock.WithdrawalRepository {
	return s.withdrawalRepo
}
