package handler

import (
	farmapp "github.com/farmledger/backend/internal/application/farm"
	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactHandler handles farm contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *farmapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *farmapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create registers a contact on the active farm
func (h *ContactHandler) Create(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}
	userID, _ := getUserID(c)

	var req farmapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.contactService.Create(c.Request.Context(), farmID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a contact on the active farm
func (h *ContactHandler) Get(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	resp, err := h.contactService.Get(c.Request.Context(), farmID, contactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns the active farm's contacts
func (h *ContactHandler) List(c *gin.Context) {
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

	page, err := h.contactService.List(c.Request.Context(), farmID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update replaces a contact's fields
func (h *ContactHandler) Update(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req farmapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.contactService.Update(c.Request.Context(), farmID, contactID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a contact from the active farm
func (h *ContactHandler) Delete(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), farmID, contactID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
