package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
	"github.com/noah-isme/purchase-req-api/pkg/response"
)

type draftService interface {
	IssueLineID(ctx context.Context) (string, error)
	AddItem(ctx context.Context, owner string, req dto.CreateLineItemRequest) (*models.LineItem, error)
	RemoveItem(owner, id string) error
	View(owner string) dto.BufferView
}

// DraftHandler exposes the draft builder and pending buffer endpoints.
type DraftHandler struct {
	service draftService
}

// NewDraftHandler constructs the handler.
func NewDraftHandler(service draftService) *DraftHandler {
	return &DraftHandler{service: service}
}

// IssueLineID godoc
// @Summary Issue a fresh requisition line identifier
// @Tags Draft
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /getReqID [post]
func (h *DraftHandler) IssueLineID(c *gin.Context) {
	lineID, err := h.service.IssueLineID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewLineIDResponse{RequisitionLineID: lineID})
}

// AddItem godoc
// @Summary Validate a draft line and append it to the pending buffer
// @Tags Draft
// @Accept json
// @Produce json
// @Param payload body dto.CreateLineItemRequest true "Line item fields"
// @Success 201 {object} response.Envelope
// @Router /draft/items [post]
func (h *DraftHandler) AddItem(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid line item payload"))
		return
	}
	item, err := h.service.AddItem(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// List godoc
// @Summary View the pending buffer and its grand total
// @Tags Draft
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /draft/items [get]
func (h *DraftHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.service.View(claims.UserID))
}

// Remove godoc
// @Summary Remove a buffered line before submission
// @Tags Draft
// @Produce json
// @Param id path string true "Line item id"
// @Success 204
// @Router /draft/items/{id} [delete]
func (h *DraftHandler) Remove(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.RemoveItem(claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
