package finance

import (
	"strings"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryType tells whether movements under a category are money coming
// in (receivable) or going out (payable).
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// IsValid checks if the category type is valid
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// String returns the string representation of CategoryType
func (t CategoryType) String() string {
	return string(t)
}

// Category groups financial movements of a farm. The (name, type) pair is
// unique per farm.
type Category struct {
	shared.FarmAggregateRoot
	Name string
	Type CategoryType
}

// NewCategory creates a new category for a farm
func NewCategory(farmID uuid.UUID, name string, categoryType CategoryType) (*Category, error) {
	name = strings.TrimSpace(name)
	if farmID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FARM", "Farm ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be INCOME or EXPENSE")
	}
	return &Category{
		FarmAggregateRoot: shared.NewFarmAggregateRoot(farmID),
		Name:              name,
		Type:              categoryType,
	}, nil
}

// Rename changes the category name; the type is fixed at creation
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}
