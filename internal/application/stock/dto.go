package stock

import (
	"time"

	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMedicationRequest represents a request to register a medication
type CreateMedicationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// RenameMedicationRequest represents a request to rename a medication
type RenameMedicationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// AddStockEntryRequest represents a request to record an incoming lot
type AddStockEntryRequest struct {
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	ExpiryDate time.Time       `json:"expiry_date" binding:"required"`
	TotalValue decimal.Decimal `json:"total_value" binding:"omitempty,gte=0"`
	Note       string          `json:"note" binding:"max=500"`
}

// WithdrawStockRequest represents a request to withdraw units from a
// medication's stock. The lots to draw from are chosen automatically.
type WithdrawStockRequest struct {
	Quantity int64  `json:"quantity" binding:"required,min=1"`
	Reason   string `json:"reason" binding:"max=500"`
}

// MedicationResponse represents a medication in API responses
type MedicationResponse struct {
	ID             uuid.UUID          `json:"id"`
	FarmID         uuid.UUID          `json:"farm_id"`
	Name           string             `json:"name"`
	TotalAvailable int64              `json:"total_available"`
	TotalReceived  int64              `json:"total_received"`
	TotalValue     decimal.Decimal    `json:"total_value"`
	EntryCount     int                `json:"entry_count"`
	NearestExpiry  *time.Time         `json:"nearest_expiry"`
	ExpiryStatus   stock.ExpiryStatus `json:"expiry_status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// StockEntryResponse represents a lot in API responses
type StockEntryResponse struct {
	ID                uuid.UUID          `json:"id"`
	MedicationID      uuid.UUID          `json:"medication_id"`
	Quantity          int64              `json:"quantity"`
	QuantityAvailable int64              `json:"quantity_available"`
	ExpiryDate        time.Time          `json:"expiry_date"`
	TotalValue        decimal.Decimal    `json:"total_value"`
	Note              string             `json:"note,omitempty"`
	DaysToExpiry      int                `json:"days_to_expiry"`
	ExpiryStatus      stock.ExpiryStatus `json:"expiry_status"`
	CreatedAt         time.Time          `json:"created_at"`
}

// AllocationResponse is one lot deduction inside a withdrawal result
type AllocationResponse struct {
	EntryID    uuid.UUID `json:"entry_id"`
	ExpiryDate time.Time `json:"expiry_date"`
	Quantity   int64     `json:"quantity"`
}

// WithdrawStockResponse represents the outcome of a withdrawal. One
// allocation is reported per lot the withdrawal drew from.
type WithdrawStockResponse struct {
	MedicationID   uuid.UUID            `json:"medication_id"`
	Quantity       int64                `json:"quantity"`
	Allocations    []AllocationResponse `json:"allocations"`
	TotalAvailable int64                `json:"total_available"`
}

// WithdrawalResponse represents a historical withdrawal record
type WithdrawalResponse struct {
	ID           uuid.UUID `json:"id"`
	MedicationID uuid.UUID `json:"medication_id"`
	EntryID      uuid.UUID `json:"entry_id"`
	Quantity     int64     `json:"quantity"`
	Reason       string    `json:"reason,omitempty"`
	RecordedBy   uuid.UUID `json:"recorded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExpiryAlertResponse is one row of the expiry notification feed
type ExpiryAlertResponse struct {
	EntryID           uuid.UUID          `json:"entry_id"`
	MedicationID      uuid.UUID          `json:"medication_id"`
	MedicationName    string             `json:"medication_name"`
	QuantityAvailable int64              `json:"quantity_available"`
	ExpiryDate        time.Time          `json:"expiry_date"`
	DaysToExpiry      int                `json:"days_to_expiry"`
	Status            stock.ExpiryStatus `json:"status"`
}

// StockDashboardResponse summarizes a farm's stock position
type StockDashboardResponse struct {
	MedicationCount int64                `json:"medication_count"`
	TotalAvailable  int64                `json:"total_available"`
	ExpiredCount    int                  `json:"expired_count"`
	CriticalCount   int                  `json:"critical_count"`
	AttentionCount  int                  `json:"attention_count"`
	Medications     []MedicationResponse `json:"medications"`
}

// ToMedicationResponse maps a medication aggregate to its response. The
// expiry status uses the dashboard bucketing on the nearest expiry.
func ToMedicationResponse(m *stock.Medication, ref time.Time) MedicationResponse {
	resp := MedicationResponse{
		ID:             m.ID,
		FarmID:         m.FarmID,
		Name:           m.Name,
		TotalAvailable: m.TotalAvailable(),
		TotalReceived:  m.TotalReceived(),
		TotalValue:     m.TotalValue().Amount(),
		EntryCount:     m.EntryCount(),
		NearestExpiry:  m.NearestExpiry(),
		ExpiryStatus:   stock.ExpiryStatusOk,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if resp.NearestExpiry != nil {
		resp.ExpiryStatus = stock.ClassifyDashboard(*resp.NearestExpiry, ref)
	}
	return resp
}

// ToStockEntryResponse maps a lot to its response
func ToStockEntryResponse(e *stock.StockEntry, ref time.Time) StockEntryResponse {
	return StockEntryResponse{
		ID:                e.ID,
		MedicationID:      e.MedicationID,
		Quantity:          e.Quantity,
		QuantityAvailable: e.QuantityAvailable,
		ExpiryDate:        e.ExpiryDate,
		TotalValue:        e.TotalValue.Amount(),
		Note:              e.Note,
		DaysToExpiry:      e.DaysToExpiry(ref),
		ExpiryStatus:      stock.ClassifyDashboard(e.ExpiryDate, ref),
		CreatedAt:         e.CreatedAt,
	}
}

// ToWithdrawalResponse maps a withdrawal record to its response
func ToWithdrawalResponse(w *stock.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:           w.ID,
		MedicationID: w.MedicationID,
		EntryID:      w.EntryID,
		Quantity:     w.Quantity,
		Reason:       w.Reason,
		RecordedBy:   w.RecordedBy,
		CreatedAt:    w.CreatedAt,
	}
}
