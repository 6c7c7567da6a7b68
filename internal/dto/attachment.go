package dto

import "github.com/noah-isme/purchase-req-api/internal/models"

// DeleteFileRequest identifies an attachment by its owning line and name.
type DeleteFileRequest struct {
	RequisitionLineID string `json:"requisitionLineId"`
	FileName          string `json:"fileName" binding:"required"`
}

// AttachmentView is the client-facing shape of an attachment entry.
type AttachmentView struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	RequisitionLineID string                  `json:"requisitionLineId"`
	Status            models.AttachmentStatus `json:"status"`
	Progress          int                     `json:"progress"`
	SizeBytes         int64                   `json:"sizeBytes"`
}

// AttachmentViewsFrom converts attachment records for API responses.
func AttachmentViewsFrom(attachments []models.Attachment) []AttachmentView {
	views := make([]AttachmentView, 0, len(attachments))
	for i := range attachments {
		a := &attachments[i]
		views = append(views, AttachmentView{
			ID:                a.ID,
			Name:              a.Name,
			RequisitionLineID: a.RequisitionLineID,
			Status:            a.Status,
			Progress:          a.Progress,
			SizeBytes:         a.SizeBytes,
		})
	}
	return views
}
