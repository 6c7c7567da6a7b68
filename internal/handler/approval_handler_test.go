package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/purchase-req-api/internal/dto"
	"github.com/noah-isme/purchase-req-api/internal/middleware"
	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
	"github.com/noah-isme/purchase-req-api/pkg/export"
)

type fakeApprovalSrv struct {
	groups     []dto.ApprovalGroup
	queueErr   error
	lastSearch string
	detail     *dto.ApprovalLineDetail
	detailErr  error
	assignErr  error
	lastAssign dto.AssignTrackingRequest
	decideErr  error
	lastDecide dto.ApproveDenyRequest
	dataset    *export.Dataset
	summary    string
	datasetErr error
}

func (f *fakeApprovalSrv) Queue(_ context.Context, search string, _ *models.JWTClaims) ([]dto.ApprovalGroup, error) {
	f.lastSearch = search
	return f.groups, f.queueErr
}

func (f *fakeApprovalSrv) Detail(context.Context, string, *models.JWTClaims) (*dto.ApprovalLineDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeApprovalSrv) AssignTrackingID(_ context.Context, req dto.AssignTrackingRequest, _ *models.JWTClaims) error {
	f.lastAssign = req
	return f.assignErr
}

func (f *fakeApprovalSrv) SetApprovalStatus(_ context.Context, req dto.ApproveDenyRequest, _ *models.JWTClaims) error {
	f.lastDecide = req
	return f.decideErr
}

func (f *fakeApprovalSrv) RequisitionDataset(context.Context, string, *models.JWTClaims) (*export.Dataset, string, error) {
	return f.dataset, f.summary, f.datasetErr
}

func reviewerContext(t *testing.T, rec *httptest.ResponseRecorder, req *http.Request) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "approver-1", Role: models.RoleApprover})
	return c
}

func TestApprovalHandlerQueue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{groups: []dto.ApprovalGroup{{RequisitionID: "REQ-000001", GrandTotal: "40.00"}}}
	handler := NewApprovalHandler(srv)

	rec := httptest.NewRecorder()
	c := reviewerContext(t, rec, httptest.NewRequest(http.MethodGet, "/getApprovalData?search=paper", nil))

	handler.Queue(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paper", srv.lastSearch)
	assert.Contains(t, rec.Body.String(), "REQ-000001")
}

func TestApprovalHandlerQueueForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{queueErr: appErrors.Clone(appErrors.ErrForbidden, "approver role required")}
	handler := NewApprovalHandler(srv)

	rec := httptest.NewRecorder()
	c := reviewerContext(t, rec, httptest.NewRequest(http.MethodGet, "/getApprovalData", nil))

	handler.Queue(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApprovalHandlerAssignTracking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{}
	handler := NewApprovalHandler(srv)

	body := `{"requisitionLineId":"000001","trackingId":"IRQ1-77"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assignReqID", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c := reviewerContext(t, rec, req)

	handler.AssignTracking(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "000001", srv.lastAssign.RequisitionLineID)
	assert.Equal(t, "IRQ1-77", srv.lastAssign.TrackingID)
}

func TestApprovalHandlerAssignTrackingRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewApprovalHandler(&fakeApprovalSrv{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assignReqID", strings.NewReader(`{"requisitionLineId":"000001"}`))
	req.Header.Set("Content-Type", "application/json")
	c := reviewerContext(t, rec, req)

	handler.AssignTracking(c)

	assert.Equal(t, appErrors.ErrValidation.Status, rec.Code)
}

func TestApprovalHandlerApproveDenyConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{decideErr: appErrors.Clone(appErrors.ErrConflict, "line already approved")}
	handler := NewApprovalHandler(srv)

	body := `{"requisitionLineId":"000001","action":"approve"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/approveDenyRequest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c := reviewerContext(t, rec, req)

	handler.ApproveDeny(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "line already approved", envelope.Error["message"])
}

func TestApprovalHandlerDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{detail: &dto.ApprovalLineDetail{
		RequisitionLineID: "000001",
		ItemDescription:   "An exceptionally long description of goods",
	}}
	handler := NewApprovalHandler(srv)

	rec := httptest.NewRecorder()
	c := reviewerContext(t, rec, httptest.NewRequest(http.MethodGet, "/getApprovalData/000001", nil))
	c.Params = gin.Params{{Key: "lineId", Value: "000001"}}

	handler.Detail(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "An exceptionally long description of goods")
}

func TestApprovalHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeApprovalSrv{
		dataset: &export.Dataset{
			Headers: []string{"Line ID", "Line Total"},
			Rows:    []map[string]string{{"Line ID": "000001", "Line Total": "20.00"}},
		},
		summary: "Grand Total: 20.00",
	}
	handler := NewApprovalHandler(srv)

	rec := httptest.NewRecorder()
	c := reviewerContext(t, rec, httptest.NewRequest(http.MethodGet, "/requisitions/REQ-000001/csv", nil))
	c.Params = gin.Params{{Key: "id", Value: "REQ-000001"}}

	handler.ExportCSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "REQ-000001.csv")
	assert.Contains(t, rec.Body.String(), "000001")
}
