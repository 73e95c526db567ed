package finance

import (
	"fmt"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Error codes for the finance module
const (
	CodeInvalidInstallmentCount = "INVALID_INSTALLMENT_COUNT"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeMovementNotFound        = "MOVEMENT_NOT_FOUND"
	CodeInstallmentNotFound     = "INSTALLMENT_NOT_FOUND"
	CodeCategoryNotFound        = "CATEGORY_NOT_FOUND"
)

// Finance sentinel errors
var (
	ErrMovementNotFound    = shared.NewDomainError(CodeMovementNotFound, "Movement not found")
	ErrInstallmentNotFound = shared.NewDomainError(CodeInstallmentNotFound, "Installment not found")
	ErrCategoryNotFound    = shared.NewDomainError(CodeCategoryNotFound, "Category not found")
)

// InvalidInstallmentCountError is returned when the installment count is
// below one or above the supported maximum.
type InvalidInstallmentCountError struct {
	Count int
}

// Error implements the error interface
func (e *InvalidInstallmentCountError) Error() string {
	return fmt.Sprintf("invalid installment count: %d (must be between 1 and %d)", e.Count, MaxInstallments)
}

// Code returns the domain error code
func (e *InvalidInstallmentCountError) Code() string {
	return CodeInvalidInstallmentCount
}

// InvalidAmountError is returned for non-positive movement totals
type InvalidAmountError struct {
	Amount decimal.Decimal
}

// Error implements the error interface
func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s (must be positive)", e.Amount.String())
}

// Code returns the domain error code
func (e *InvalidAmountError) Code() string {
	return CodeInvalidAmount
}
