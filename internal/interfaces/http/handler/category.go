package handler

import (
	financeapp "github.com/farmledger/backend/internal/application/finance"
	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles finance category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *financeapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *financeapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create registers a category on the active farm
func (h *CategoryHandler) Create(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	var req financeapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.categoryService.Create(c.Request.Context(), farmID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a category on the active farm
func (h *CategoryHandler) Get(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	resp, err := h.categoryService.Get(c.Request.Context(), farmID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the active farm's categories, optionally by type
func (h *CategoryHandler) List(c *gin.Context) {
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

	var categoryType *finance.CategoryType
	if t := c.Query("type"); t != "" {
		ct := finance.CategoryType(t)
		if !ct.IsValid() {
			h.BadRequest(c, "Category type must be INCOME or EXPENSE")
			return
		}
		categoryType = &ct
	}

	categories, err := h.categoryService.List(c.Request.Context(), farmID, categoryType, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Rename changes a category's name
func (h *CategoryHandler) Rename(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req financeapp.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.categoryService.Rename(c.Request.Context(), farmID, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a category that has no movements
func (h *CategoryHandler) Delete(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), farmID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
