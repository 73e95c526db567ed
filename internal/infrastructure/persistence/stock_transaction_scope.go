package persistence

import (
	"context"

	appstock "github.com/farmledger/backend/internal/application/stock"
	"github.com/farmledger/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock TransactionScope using
// GORM transactions. The withdrawal path runs entirely inside Execute so
// the locked lot reads and the deductions commit or roll back together.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockTransactionalRepositories{tx: tx})
	})
}

// gormStockTransactionalRepositories provides stock repositories bound to
// one transaction.
type gormStockTransactionalRepositories struct {
	tx *gorm.DB
}

// MedicationRepo returns the medication repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) MedicationRepo() stock.MedicationRepository {
	return NewGormMedicationRepository(r.tx)
}

// EntryRepo returns the stock entry repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) EntryRepo() stock.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) WithdrawalRepo() stock.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

// Ensure GormStockTransactionScope implements TransactionScope
var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)

// Ensure gormStockTransactionalRepositories implements TransactionalRepositories
var _ appstock.TransactionalRepositories = (*gormStockTransactionalRepositories)(nil)
