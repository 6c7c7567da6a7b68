package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/purchase-req-api/internal/models"
	appErrors "github.com/noah-isme/purchase-req-api/pkg/errors"
)

type attachmentStore interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	DeleteByLineAndName(ctx context.Context, lineID, fileName string) error
}

type attachmentFileStorage interface {
	SaveStream(filename string, r io.Reader) (string, int64, error)
	Open(filename string) (io.ReadCloser, error)
	Delete(filename string) error
}

// AttachmentServiceConfig bounds accepted uploads.
type AttachmentServiceConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
}

// AttachmentService tracks per-file upload state for files attached to a
// draft. Selected files are staged on disk in idle state; Upload promotes
// them under their owning requisition line, one goroutine per file, with
// isolated per-file failure.
type AttachmentService struct {
	repo    attachmentStore
	storage attachmentFileStorage
	metrics *MetricsService
	logger  *zap.Logger
	cfg     AttachmentServiceConfig
	mimeSet map[string]struct{}

	mu    sync.Mutex
	lists map[string][]*models.Attachment
}

// NewAttachmentService constructs the service.
func NewAttachmentService(repo attachmentStore, storage attachmentFileStorage, metrics *MetricsService, logger *zap.Logger, cfg AttachmentServiceConfig) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 25 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/zip",
			"image/png",
			"image/jpeg",
		}
	}
	mimeSet := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mt := range cfg.AllowedMIMEs {
		mimeSet[strings.ToLower(mt)] = struct{}{}
	}
	return &AttachmentService{
		repo:    repo,
		storage: storage,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		mimeSet: mimeSet,
		lists:   make(map[string][]*models.Attachment),
	}
}

// Select stages a newly chosen file and appends it in idle state. The file
// is validated against the allowed MIME set before any bytes are staged, and
// the staging copy itself is bounded so an oversized stream never lands
// whole on disk.
func (s *AttachmentService) Select(owner, lineID, fileName, mimeType string, content io.Reader) (*models.Attachment, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file name is required")
	}

	detected, rest, err := s.detectMime(mimeType, content)
	if err != nil {
		return nil, err
	}
	if _, allowed := s.mimeSet[strings.ToLower(detected)]; !allowed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mime type not allowed")
	}

	id := uuid.NewString()
	staged := filepath.Join("staging", id+"_"+name)
	path, written, err := s.storage.SaveStream(staged, io.LimitReader(rest, s.cfg.MaxFileSize+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stage attachment")
	}
	if written > s.cfg.MaxFileSize {
		_ = s.storage.Delete(path)
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.cfg.MaxFileSize))
	}

	attachment := &models.Attachment{
		ID:                id,
		Name:              name,
		RequisitionLineID: strings.TrimSpace(lineID),
		Status:            models.AttachmentStatusIdle,
		SizeBytes:         written,
		StagedPath:        path,
		CreatedAt:         time.Now().UTC(),
	}

	s.mu.Lock()
	s.lists[owner] = append(s.lists[owner], attachment)
	snapshot := *attachment
	s.mu.Unlock()
	return &snapshot, nil
}

// detectMime resolves the declared content type, sniffing the stream head
// when the client sent none. The consumed head bytes are stitched back onto
// the returned reader.
func (s *AttachmentService) detectMime(declared string, content io.Reader) (string, io.Reader, error) {
	if content == nil {
		return "", nil, appErrors.Clone(appErrors.ErrValidation, "file reader missing")
	}
	if declared != "" {
		return declared, content, nil
	}
	header := make([]byte, 512)
	n, err := io.ReadFull(content, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect file")
	}
	if n == 0 {
		return "", nil, appErrors.Clone(appErrors.ErrValidation, "empty file")
	}
	rest := io.MultiReader(bytes.NewReader(header[:n]), content)
	return http.DetectContentType(header[:n]), rest, nil
}

// List returns a copy of the owner's attachment entries in selection order.
func (s *AttachmentService) List(owner string) []models.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[owner]
	out := make([]models.Attachment, 0, len(list))
	for _, a := range list {
		out = append(out, *a)
	}
	return out
}

// Upload promotes every idle attachment under the given requisition line.
// Files upload concurrently; a failure in one never affects the terminal
// state of the others. Returns the list snapshot after all uploads settle.
func (s *AttachmentService) Upload(ctx context.Context, owner, lineID string) ([]models.Attachment, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requisition line id is required")
	}

	s.mu.Lock()
	var pending []*models.Attachment
	for _, a := range s.lists[owner] {
		if a.Status != models.AttachmentStatusIdle {
			continue
		}
		if a.RequisitionLineID != "" && a.RequisitionLineID != lineID {
			continue
		}
		a.Status = models.AttachmentStatusUploading
		a.Progress = 0
		pending = append(pending, a)
	}
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, a := range pending {
		wg.Add(1)
		go func(att *models.Attachment) {
			defer wg.Done()
			s.uploadOne(ctx, att, lineID)
		}(a)
	}
	wg.Wait()

	return s.List(owner), nil
}

func (s *AttachmentService) uploadOne(ctx context.Context, att *models.Attachment, lineID string) {
	staged, name, size := s.snapshotForUpload(att)

	src, err := s.storage.Open(staged)
	if err != nil {
		s.failUpload(att, lineID, err)
		return
	}
	defer src.Close() //nolint:errcheck

	dest := filepath.Join("files", lineID, name)
	reader := &progressReader{
		ctx:   ctx,
		r:     src,
		total: size,
		onChange: func(pct int) {
			s.setProgress(att, pct)
		},
	}
	stored, written, err := s.storage.SaveStream(dest, reader)
	if err != nil {
		s.failUpload(att, lineID, err)
		return
	}

	record := models.Attachment{
		ID:                att.ID,
		Name:              name,
		RequisitionLineID: lineID,
		Status:            models.AttachmentStatusSuccess,
		SizeBytes:         written,
		StoredPath:        stored,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		_ = s.storage.Delete(stored)
		s.failUpload(att, lineID, err)
		return
	}

	s.mu.Lock()
	att.Status = models.AttachmentStatusSuccess
	att.Progress = 100
	att.RequisitionLineID = lineID
	att.StoredPath = stored
	att.StagedPath = ""
	s.mu.Unlock()

	_ = s.storage.Delete(staged)
	s.metrics.IncAttachmentUpload(string(models.AttachmentStatusSuccess))
}

func (s *AttachmentService) snapshotForUpload(att *models.Attachment) (staged, name string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return att.StagedPath, att.Name, att.SizeBytes
}

func (s *AttachmentService) setProgress(att *models.Attachment, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if att.Status == models.AttachmentStatusUploading {
		att.Progress = pct
	}
}

func (s *AttachmentService) failUpload(att *models.Attachment, lineID string, err error) {
	s.mu.Lock()
	att.Status = models.AttachmentStatusError
	s.mu.Unlock()
	s.logger.Error("attachment upload failed",
		zap.Error(err),
		zap.String("file", att.Name),
		zap.String("line_id", lineID),
	)
	s.metrics.IncAttachmentUpload(string(models.AttachmentStatusError))
}

// EnsureUploaded promotes any still-idle attachments under the line each
// file was selected against and fails when any attachment is not success
// afterwards. Files never assigned to a line cannot be attributed to one
// here and block the caller. Used by submission to block until every file
// has resolved.
func (s *AttachmentService) EnsureUploaded(ctx context.Context, owner string) error {
	list := s.List(owner)
	if len(list) == 0 {
		return nil
	}

	var unassigned []string
	lines := make(map[string]struct{})
	for i := range list {
		if list[i].Status != models.AttachmentStatusIdle {
			continue
		}
		if list[i].RequisitionLineID == "" {
			unassigned = append(unassigned, list[i].Name)
			continue
		}
		lines[list[i].RequisitionLineID] = struct{}{}
	}
	if len(unassigned) > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed,
			"attachments not assigned to a requisition line: "+strings.Join(unassigned, ", "))
	}

	for lineID := range lines {
		if _, err := s.Upload(ctx, owner, lineID); err != nil {
			return err
		}
	}

	var unresolved []string
	for _, a := range s.List(owner) {
		if a.Status != models.AttachmentStatusSuccess {
			unresolved = append(unresolved, a.Name)
		}
	}
	if len(unresolved) > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed,
			"attachments not uploaded: "+strings.Join(unresolved, ", "))
	}
	return nil
}

// Delete removes the attachment keyed by requisition line and file name, so
// same-named files on different lines never collide. Removal is optimistic;
// when the attachment had uploaded successfully the backend delete runs as
// the second phase, and a backend failure reinserts the entry and returns
// the error.
func (s *AttachmentService) Delete(ctx context.Context, owner, lineID, fileName string) error {
	s.mu.Lock()
	list := s.lists[owner]
	index := -1
	for i, a := range list {
		if a.Name == fileName && a.RequisitionLineID == lineID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
	}
	att := list[index]
	s.lists[owner] = append(list[:index], list[index+1:]...)
	s.mu.Unlock()

	if att.Status != models.AttachmentStatusSuccess {
		if att.StagedPath != "" {
			_ = s.storage.Delete(att.StagedPath)
		}
		return nil
	}

	if err := s.backendDelete(ctx, att); err != nil {
		s.reinsert(owner, index, att)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attachment")
	}
	return nil
}

func (s *AttachmentService) backendDelete(ctx context.Context, att *models.Attachment) error {
	if err := s.storage.Delete(att.StoredPath); err != nil {
		return err
	}
	return s.repo.DeleteByLineAndName(ctx, att.RequisitionLineID, att.Name)
}

func (s *AttachmentService) reinsert(owner string, index int, att *models.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[owner]
	if index > len(list) {
		index = len(list)
	}
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = att
	s.lists[owner] = list
}

// Clear drops the owner's attachment list after a successful submission.
// Staged files of non-uploaded entries are removed best effort.
func (s *AttachmentService) Clear(owner string) {
	s.mu.Lock()
	list := s.lists[owner]
	delete(s.lists, owner)
	s.mu.Unlock()

	for _, a := range list {
		if a.StagedPath != "" {
			_ = s.storage.Delete(a.StagedPath)
		}
	}
}

// progressReader reports copy progress as a percentage of the known total
// and observes context cancellation between chunks.
type progressReader struct {
	ctx      context.Context
	r        io.Reader
	total    int64
	read     int64
	onChange func(pct int)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.onChange(pct)
	}
	return n, err
}
