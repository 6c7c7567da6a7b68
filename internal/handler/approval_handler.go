package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
	"github.com/noah-isme/purchase-req-api/pkg/export"
	"github.com/noah-isme/purchase-req-api/pkg/response"
)

type approvalService interface {
	Queue(ctx context.Context, search string, actor *models.JWTClaims) ([]dto.ApprovalGroup, error)
	Detail(ctx context.Context, lineID string, actor *models.JWTClaims) (*dto.ApprovalLineDetail, error)
	AssignTrackingID(ctx context.Context, req dto.AssignTrackingRequest, actor *models.JWTClaims) error
	SetApprovalStatus(ctx context.Context, req dto.ApproveDenyRequest, actor *models.JWTClaims) error
	RequisitionDataset(ctx context.Context, requisitionID string, actor *models.JWTClaims) (*export.Dataset, string, error)
}

// ApprovalHandler exposes the reviewer-facing queue endpoints.
type ApprovalHandler struct {
	service approvalService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewApprovalHandler constructs the handler.
func NewApprovalHandler(service approvalService) *ApprovalHandler {
	return &ApprovalHandler{
		service: service,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// Queue godoc
// @Summary Approval queue grouped by requisition id
// @Tags Approvals
// @Produce json
// @Param search query string false "Filter requester, description, or justification"
// @Success 200 {object} response.Envelope
// @Router /getApprovalData [get]
func (h *ApprovalHandler) Queue(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	groups, err := h.service.Queue(c.Request.Context(), c.Query("search"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Detail godoc
// @Summary Untruncated long-text fields for one line
// @Tags Approvals
// @Produce json
// @Param lineId path string true "Requisition line id"
// @Success 200 {object} response.Envelope
// @Router /getApprovalData/{lineId} [get]
func (h *ApprovalHandler) Detail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), c.Param("lineId"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// AssignTracking godoc
// @Summary Assign an IRQ1 tracking id to a line
// @Tags Approvals
// @Accept json
// @Produce json
// @Param payload body dto.AssignTrackingRequest true "Tracking assignment"
// @Success 204
// @Router /assignReqID [post]
func (h *ApprovalHandler) AssignTracking(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.AssignTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid tracking payload"))
		return
	}
	if err := h.service.AssignTrackingID(c.Request.Context(), req, claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ApproveDeny godoc
// @Summary Record an approve or deny decision for a line
// @Tags Approvals
// @Accept json
// @Produce json
// @Param payload body dto.ApproveDenyRequest true "Decision"
// @Success 204
// @Router /approveDenyRequest [post]
func (h *ApprovalHandler) ApproveDeny(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.ApproveDenyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
		return
	}
	if err := h.service.SetApprovalStatus(c.Request.Context(), req, claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export one requisition as CSV
// @Tags Approvals
// @Produce text/csv
// @Param id path string true "Requisition id"
// @Success 200 {string} string "CSV payload"
// @Router /requisitions/{id}/csv [get]
func (h *ApprovalHandler) ExportCSV(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	reqID := c.Param("id")
	dataset, _, err := h.service.RequisitionDataset(c.Request.Context(), reqID, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.csv.Render(*dataset)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reqID+`.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export one requisition as PDF
// @Tags Approvals
// @Produce application/pdf
// @Param id path string true "Requisition id"
// @Success 200 {string} string "PDF payload"
// @Router /requisitions/{id}/pdf [get]
func (h *ApprovalHandler) ExportPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	reqID := c.Param("id")
	dataset, summary, err := h.service.RequisitionDataset(c.Request.Context(), reqID, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.pdf.Render(*dataset, "Purchase Requisition "+reqID, summary)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reqID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
