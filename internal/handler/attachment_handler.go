package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
	"github.com/noah-isme/purchase-req-api/pkg/response"
)

type attachmentService interface {
	Select(owner, lineID, fileName, mimeType string, content io.Reader) (*models.Attachment, error)
	Upload(ctx context.Context, owner, lineID string) ([]models.Attachment, error)
	Delete(ctx context.Context, owner, lineID, fileName string) error
	List(owner string) []models.Attachment
}

// AttachmentHandler exposes attachment upload and deletion endpoints.
type AttachmentHandler struct {
	service attachmentService
}

// NewAttachmentHandler constructs the handler.
func NewAttachmentHandler(service attachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Upload godoc
// @Summary Stage attachment files and upload them under a requisition line
// @Description Multipart files are staged first; when requisitionLineId is
// @Description present the staged files upload concurrently under that line.
// @Tags Attachments
// @Accept multipart/form-data
// @Produce json
// @Param requisitionLineId formData string false "Owning requisition line"
// @Param file formData file false "Files to attach"
// @Success 200 {object} response.Envelope
// @Router /upload [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid multipart payload"))
		return
	}

	lineID := strings.TrimSpace(c.PostForm("requisitionLineId"))
	for _, header := range form.File["file"] {
		src, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read uploaded file"))
			return
		}
		_, selErr := h.service.Select(claims.UserID, lineID, header.Filename, header.Header.Get("Content-Type"), src)
		src.Close() //nolint:errcheck
		if selErr != nil {
			response.Error(c, selErr)
			return
		}
	}

	if lineID == "" {
		// Selection only; files stay idle until an upload names their line.
		response.JSON(c, http.StatusOK, dto.AttachmentViewsFrom(h.service.List(claims.UserID)))
		return
	}

	list, err := h.service.Upload(c.Request.Context(), claims.UserID, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.AttachmentViewsFrom(list))
}

// List godoc
// @Summary List the caller's attachment entries
// @Tags Attachments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, dto.AttachmentViewsFrom(h.service.List(claims.UserID)))
}

// Delete godoc
// @Summary Delete an attachment
// @Tags Attachments
// @Accept json
// @Produce json
// @Param payload body dto.DeleteFileRequest true "Attachment reference"
// @Success 204
// @Router /deleteFile [post]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid delete payload"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, req.RequisitionLineID, req.FileName); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
