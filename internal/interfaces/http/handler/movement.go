package handler

import (
	"strconv"
	"time"

	financeapp "github.com/farmledger/backend/internal/application/finance"
	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MovementHandler handles financial movement and installment endpoints
type MovementHandler struct {
	BaseHandler
	movementService *financeapp.MovementService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movementService *financeapp.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// Create records a movement and generates its installment schedule
func (h *MovementHandler) Create(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	var req financeapp.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.movementService.Create(c.Request.Context(), farmID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a movement with its schedule
func (h *MovementHandler) Get(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	resp, err := h.movementService.Get(c.Request.Context(), farmID, movementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the active farm's movements, filterable by category,
// contact, type and date range
func (h *MovementHandler) List(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	filter, err := parseMovementFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.movementService.List(c.Request.Context(), farmID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update reworks a movement and regenerates its schedule
func (h *MovementHandler) Update(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	var req financeapp.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.movementService.Update(c.Request.Context(), farmID, movementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a movement and its installments
func (h *MovementHandler) Delete(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	if err := h.movementService.Delete(c.Request.Context(), farmID, movementID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SettleInstallment marks an installment as paid
func (h *MovementHandler) SettleInstallment(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	installmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	var req financeapp.SettleInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.movementService.SettleInstallment(c.Request.Context(), farmID, installmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReopenInstallment reverts a settled installment to pending
func (h *MovementHandler) ReopenInstallment(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	installmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	resp, err := h.movementService.ReopenInstallment(c.Request.Context(), farmID, installmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPendingInstallments returns pending installments of one category
// type, ordered by due date
func (h *MovementHandler) ListPendingInstallments(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	categoryType := finance.CategoryType(c.Query("type"))
	if !categoryType.IsValid() {
		h.BadRequest(c, "Category type must be INCOME or EXPENSE")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	installments, err := h.movementService.ListPendingInstallments(c.Request.Context(), farmID, categoryType, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, installments)
}

// parseMovementFilter reads movement list filters from query parameters.
// Dates accept either RFC3339 or plain YYYY-MM-DD.
func parseMovementFilter(c *gin.Context) (financeapp.MovementListFilter, error) {
	var filter financeapp.MovementListFilter

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidParam("category_id")
		}
		filter.CategoryID = &id
	}
	if v := c.Query("contact_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidParam("contact_id")
		}
		filter.ContactID = &id
	}
	if v := c.Query("category_type"); v != "" {
		ct := finance.CategoryType(v)
		if !ct.IsValid() {
			return filter, errInvalidParam("category_type")
		}
		filter.CategoryType = &ct
	}
	if v := c.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errInvalidParam("start_date")
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errInvalidParam("end_date")
		}
		filter.EndDate = &t
	}
	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, errInvalidParam("page")
		}
		filter.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil || pageSize < 1 || pageSize > 100 {
			return filter, errInvalidParam("page_size")
		}
		filter.PageSize = pageSize
	}

	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

type invalidParamError struct {
	param string
}

func (e *invalidParamError) Error() string {
	return "Invalid query parameter: " + e.param
}

func errInvalidParam(param string) error {
	return &invalidParamError{param: param}
}
