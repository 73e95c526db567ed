package handler

import (
	farmapp "github.com/farmledger/backend/internal/application/farm"
	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FarmHandler handles farm management endpoints
type FarmHandler struct {
	BaseHandler
	farmService *farmapp.FarmService
}

// NewFarmHandler creates a new FarmHandler
func NewFarmHandler(farmService *farmapp.FarmService) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

// Create registers a farm owned by the authenticated user
func (h *FarmHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req farmapp.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.farmService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one of the user's farms
func (h *FarmHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	farmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid farm ID")
		return
	}

	resp, err := h.farmService.Get(c.Request.Context(), userID, farmID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the farms the user owns
func (h *FarmHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	farms, err := h.farmService.ListOwned(c.Request.Context(), userID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farms)
}

// Update replaces a farm's descriptive fields
func (h *FarmHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	farmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid farm ID")
		return
	}

	var req farmapp.UpdateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.farmService.Update(c.Request.Context(), userID, farmID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate disables a farm without deleting its data
func (h *FarmHandler) Deactivate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	farmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid farm ID")
		return
	}

	if err := h.farmService.Deactivate(c.Request.Context(), userID, farmID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate re-enables a deactivated farm
func (h *FarmHandler) Activate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	farmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid farm ID")
		return
	}

	if err := h.farmService.Activate(c.Request.Context(), userID, farmID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
