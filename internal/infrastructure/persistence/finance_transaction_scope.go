package persistence

import (
	"context"

	appfinance "github.com/farmledger/backend/internal/application/finance"
	"github.com/farmledger/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// GormFinanceTransactionScope implements the finance TransactionScope
// using GORM transactions. Movement creation writes the movement and its
// full schedule inside Execute, so either all rows persist or none do.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFinanceTransactionalRepositories{tx: tx})
	})
}

// gormFinanceTransactionalRepositories provides finance repositories
// bound to one transaction.
type gormFinanceTransactionalRepositories struct {
	tx *gorm.DB
}

// CategoryRepo returns the category repository scoped to the current transaction
func (r *gormFinanceTransactionalRepositories) CategoryRepo() finance.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

// MovementRepo returns the movement repository scoped to the current transaction
func (r *gormFinanceTransactionalRepositories) MovementRepo() finance.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// InstallmentRepo returns the installment repository scoped to the current transaction
func (r *gormFinanceTransactionalRepositories) InstallmentRepo() finance.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

// Ensure GormFinanceTransactionScope implements TransactionScope
var _ appfinance.TransactionScope = (*GormFinanceTransactionScope)(nil)

// Ensure gormFinanceTransactionalRepositories implements TransactionalRepositories
var _ appfinance.TransactionalRepositories = (*gormFinanceTransactionalRepositories)(nil)
