package finance

import (
	"context"

	"github.com/farmledger/backend/internal/domain/finance"
)

// TransactionScope provides transactional access to finance repositories.
// Creating a movement persists the movement row and all of its
// installments atomically, so a schedule can never be half-written.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to finance repositories
// sharing the same underlying transaction.
type TransactionalRepositories interface {
	// CategoryRepo returns the category repository scoped to the current
	// transaction
	CategoryRepo() finance.CategoryRepository
	// MovementRepo returns the movement repository scoped to the current
	// transaction
	MovementRepo() finance.MovementRepository
	// InstallmentRepo returns the installment repository scoped to the
	// current transaction
	InstallmentRepo() finance.InstallmentRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	categoryRepo    finance.CategoryRepository
	movementRepo    finance.MovementRepository
	installmentRepo finance.InstallmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	categoryRepo finance.CategoryRepository,
	movementRepo finance.MovementRepository,
	installmentRepo finance.InstallmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		categoryRepo:    categoryRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
	}
}

// Execute runs the function directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CategoryRepo returns the category repository
func (s *NoOpTransactionScope) CategoryRepo() finance.CategoryRepository {
	return s.categoryRepo
}

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() finance.MovementRepository {
	return s.movementRepo
}

// InstallmentRepo returns the installment repository
func (s *NoOpTransactionScope) InstallmentRepo() finance.InstallmentRepository {
	return s.installmentRepo
}
