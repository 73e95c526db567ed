package handler

import (
	stockapp "github.com/farmledger/backend/internal/application/stock"
	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles medication stock endpoints
type StockHandler struct {
	BaseHandler
	stockService *stockapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *stockapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateMedication registers a medication on the active farm
func (h *StockHandler) CreateMedication(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	var req stockapp.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.stockService.CreateMedication(c.Request.Context(), farmID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetMedication returns a medication with its stock position
func (h *StockHandler) GetMedication(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	resp, err := h.stockService.GetMedication(c.Request.Context(), farmID, medicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMedications returns the active farm's medications
func (h *StockHandler) ListMedications(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.stockService.ListMedications(c.Request.Context(), farmID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RenameMedication changes a medication's name
func (h *StockHandler) RenameMedication(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	var req stockapp.RenameMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.stockService.RenameMedication(c.Request.Context(), farmID, medicationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteMedication removes a medication and its lots
func (h *StockHandler) DeleteMedication(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	if err := h.stockService.DeleteMedication(c.Request.Context(), farmID, medicationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddEntry records an incoming lot for a medication
func (h *StockHandler) AddEntry(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	var req stockapp.AddStockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.stockService.AddEntry(c.Request.Context(), farmID, medicationID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEntries returns a medication's lots in depletion order
func (h *StockHandler) ListEntries(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	entries, err := h.stockService.ListEntries(c.Request.Context(), farmID, medicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// DeleteEntry removes a lot that was recorded in error
func (h *StockHandler) DeleteEntry(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.stockService.DeleteEntry(c.Request.Context(), farmID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Withdraw deducts units from a medication's stock, draining the
// earliest-expiring lots first
func (h *StockHandler) Withdraw(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	var req stockapp.WithdrawStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.stockService.Withdraw(c.Request.Context(), farmID, medicationID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListWithdrawals returns a medication's withdrawal history
func (h *StockHandler) ListWithdrawals(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid medication ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.stockService.ListWithdrawals(c.Request.Context(), farmID, medicationID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ExpiryNotifications returns lots that are expired or expiring soon
func (h *StockHandler) ExpiryNotifications(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	alerts, err := h.stockService.ExpiryNotifications(c.Request.Context(), farmID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Dashboard summarizes the active farm's stock position
func (h *StockHandler) Dashboard(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	resp, err := h.stockService.Dashboard(c.Request.Context(), farmID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
