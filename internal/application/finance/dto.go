package finance

import (
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string               `json:"name" binding:"required,min=1,max=255"`
	Type finance.CategoryType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// RenameCategoryRequest represents a request to rename a category
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID            `json:"id"`
	FarmID    uuid.UUID            `json:"farm_id"`
	Name      string               `json:"name"`
	Type      finance.CategoryType `json:"type"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// CreateMovementRequest represents a request to record a financial
// movement. The total is split into the requested number of installments.
type CreateMovementRequest struct {
	CategoryID       uuid.UUID       `json:"category_id" binding:"required"`
	ContactID        *uuid.UUID      `json:"contact_id"`
	TotalAmount      decimal.Decimal `json:"total_amount" binding:"required,gt=0"`
	InstallmentCount int             `json:"installment_count" binding:"required,min=1,max=60"`
	IncomeTax        bool            `json:"income_tax"`
	Description      string          `json:"description" binding:"max=500"`
	Date             time.Time       `json:"date" binding:"required"`
}

// UpdateMovementRequest represents a request to rework a movement's
// schedule. Rejected once any installment is settled.
type UpdateMovementRequest struct {
	CategoryID       uuid.UUID       `json:"category_id" binding:"required"`
	ContactID        *uuid.UUID      `json:"contact_id"`
	TotalAmount      decimal.Decimal `json:"total_amount" binding:"required,gt=0"`
	InstallmentCount int             `json:"installment_count" binding:"required,min=1,max=60"`
	IncomeTax        bool            `json:"income_tax"`
	Description      string          `json:"description" binding:"max=500"`
	Date             time.Time       `json:"date" binding:"required"`
}

// SettleInstallmentRequest represents a request to settle an installment.
// A nil amount means the full amount due; a nil date means today.
type SettleInstallmentRequest struct {
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
	SettledDate *time.Time       `json:"settled_date"`
}

// MovementListFilter represents filter options for movement listing
type MovementListFilter struct {
	CategoryID   *uuid.UUID            `form:"category_id"`
	CategoryType *finance.CategoryType `form:"category_type" binding:"omitempty,oneof=INCOME EXPENSE"`
	ContactID    *uuid.UUID            `form:"contact_id"`
	StartDate    *time.Time            `form:"start_date"`
	EndDate      *time.Time            `form:"end_date"`
	Page         int                   `form:"page" binding:"omitempty,min=1"`
	PageSize     int                   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID          uuid.UUID             `json:"id"`
	MovementID  uuid.UUID             `json:"movement_id"`
	Sequence    int                   `json:"sequence"`
	AmountDue   decimal.Decimal       `json:"amount_due"`
	DueDate     time.Time             `json:"due_date"`
	AmountPaid  decimal.Decimal       `json:"amount_paid"`
	Status      finance.PaymentStatus `json:"status"`
	SettledDate *time.Time            `json:"settled_date"`
	Overdue     bool                  `json:"overdue"`
}

// MovementResponse represents a movement with its schedule
type MovementResponse struct {
	ID               uuid.UUID             `json:"id"`
	FarmID           uuid.UUID             `json:"farm_id"`
	CategoryID       uuid.UUID             `json:"category_id"`
	ContactID        *uuid.UUID            `json:"contact_id"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	InstallmentCount int                   `json:"installment_count"`
	IncomeTax        bool                  `json:"income_tax"`
	Description      string                `json:"description"`
	Date             time.Time             `json:"date"`
	Settled          bool                  `json:"settled"`
	Outstanding      decimal.Decimal       `json:"outstanding"`
	Installments     []InstallmentResponse `json:"installments"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// FinanceSummaryResponse is the receivable/payable rollup across every
// installment, with the still-pending portions broken out. Net is
// receivable minus payable and may be negative.
type FinanceSummaryResponse struct {
	Receivable        decimal.Decimal `json:"receivable"`
	Payable           decimal.Decimal `json:"payable"`
	Net               decimal.Decimal `json:"net"`
	PendingReceivable decimal.Decimal `json:"pending_receivable"`
	PendingPayable    decimal.Decimal `json:"pending_payable"`
}

// MonthlyTotal is one month of the settled cashflow series
type MonthlyTotal struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryBreakdownRow is one category's share of a period's amount due
type CategoryBreakdownRow struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// ToCategoryResponse maps a category to its response
func ToCategoryResponse(c *finance.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		FarmID:    c.FarmID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToInstallmentResponse maps an installment to its response
func ToInstallmentResponse(i *finance.Installment, ref time.Time) InstallmentResponse {
	return InstallmentResponse{
		ID:          i.ID,
		MovementID:  i.MovementID,
		Sequence:    i.Sequence,
		AmountDue:   i.AmountDue.Amount(),
		DueDate:     i.DueDate,
		AmountPaid:  i.AmountPaid.Amount(),
		Status:      i.Status,
		SettledDate: i.SettledDate,
		Overdue:     i.IsOverdue(ref),
	}
}

// ToMovementResponse maps a movement aggregate to its response
func ToMovementResponse(m *finance.Movement, ref time.Time) MovementResponse {
	installments := make([]InstallmentResponse, 0, len(m.Installments))
	for i := range m.Installments {
		installments = append(installments, ToInstallmentResponse(&m.Installments[i], ref))
	}
	return MovementResponse{
		ID:               m.ID,
		FarmID:           m.FarmID,
		CategoryID:       m.CategoryID,
		ContactID:        m.ContactID,
		TotalAmount:      m.TotalAmount.Amount(),
		InstallmentCount: m.InstallmentCount,
		IncomeTax:        m.IncomeTax,
		Description:      m.Description,
		Date:             m.Date,
		Settled:          m.IsSettled(),
		Outstanding:      m.OutstandingTotal().Amount(),
		Installments:     installments,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
