package stock

import (
	"fmt"

	"github.com/farmledger/backend/internal/domain/shared"
)

// Error codes for the stock ledger
const (
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeInvalidQuantity    = "INVALID_QUANTITY"
	CodeMedicationNotFound = "MEDICATION_NOT_FOUND"
	CodeEntryNotFound      = "ENTRY_NOT_FOUND"
)

// Stock ledger sentinel errors
var (
	ErrMedicationNotFound = shared.NewDomainError(CodeMedicationNotFound, "Medication not found")
	ErrEntryNotFound      = shared.NewDomainError(CodeEntryNotFound, "Stock entry not found")
)

// InsufficientStockError is returned when a withdrawal requests more than
// the medication's total available stock. The request mutates nothing.
type InsufficientStockError struct {
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// Code returns the domain error code
func (e *InsufficientStockError) Code() string {
	return CodeInsufficientStock
}

// InvalidQuantityError is returned for non-positive quantities
type InvalidQuantityError struct {
	Quantity int64
}

// Error implements the error interface
func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d (must be a positive integer)", e.Quantity)
}

// Code returns the domain error code
func (e *InvalidQuantityError) Code() string {
	return CodeInvalidQuantity
}
