package document

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	documenterrors "github.com/cha0jun/leavey/internal/document/errors"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/shared/contextutil"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultMaxBytes int64 = 10 << 20

var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// LeaveReader gives the document service the leave visibility rules.
type LeaveReader interface {
	GetByID(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error)
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, p domain.Principal, leaveID, filename string, body io.Reader) (DocumentResponse, error)
	List(ctx context.Context, p domain.Principal, leaveID string) ([]DocumentResponse, error)
	Download(ctx context.Context, p domain.Principal, id string) (Download, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	leaves   LeaveReader
	storage  Storage
	maxBytes int64
	tracer   trace.Tracer
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	recorder audit.Recorder,
	leaves LeaveReader,
	storage Storage,
	maxBytes int64,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &service{
		db:       db,
		repo:     repo,
		recorder: recorder,
		leaves:   leaves,
		storage:  storage,
		maxBytes: maxBytes,
		tracer:   otel.Tracer("github.com/cha0jun/leavey/internal/document"),
		now:      time.Now,
		logger:   l,
	}
}

// Upload stores a supporting document for the caller's own leave request.
// The type is decided from the content, not the file name.
func (s *service) Upload(ctx context.Context, p domain.Principal, leaveID, filename string, body io.Reader) (DocumentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "document.upload", trace.WithAttributes(
		attribute.String("leave.id", leaveID),
		attribute.Int64("upload.max_bytes", s.maxBytes),
	))
	defer span.End()
	log := contextutil.GetLogger(ctx, s.logger)

	fail := func(err error, msg string) (DocumentResponse, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		return DocumentResponse{}, err
	}

	if body == nil {
		return fail(documenterrors.ErrFileRequired, "validation failed")
	}

	lv, err := s.leaves.GetByID(ctx, p, leaveID)
	if err != nil {
		return fail(err, "leave lookup failed")
	}
	if lv.UserID != p.UserID.String() {
		return fail(documenterrors.ErrNotOwner, "forbidden")
	}
	leaveUUID, err := uuid.Parse(lv.ID)
	if err != nil {
		return fail(err, "bad leave id")
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(body, s.maxBytes+1)); err != nil {
		return fail(err, "read failed")
	}
	if buf.Len() == 0 {
		return fail(documenterrors.ErrFileEmpty, "empty file")
	}
	if int64(buf.Len()) > s.maxBytes {
		return fail(documenterrors.ErrFileTooLarge, "payload too large")
	}

	detected := mimetype.Detect(buf.Bytes())
	contentType, _, _ := strings.Cut(detected.String(), ";")
	ext, ok := allowedTypes[contentType]
	span.SetAttributes(attribute.String("upload.detected_mime", contentType))
	if !ok {
		log.Warn("document type rejected", zap.String("content_type", detected.String()))
		return fail(documenterrors.ErrFileTypeNotAllowed, "type not allowed")
	}

	docID := uuid.New()
	location, err := s.storage.Put(ctx, docID.String()+ext, bytes.NewReader(buf.Bytes()))
	if err != nil {
		log.Error("store document failed", zap.Error(err))
		return fail(err, "store failed")
	}

	doc := &Document{
		ID:             docID,
		LeaveRequestID: leaveUUID,
		Filename:       sanitizeFilename(filename, ext),
		StoragePath:    location,
		ContentType:    contentType,
		SizeBytes:      int64(buf.Len()),
		UploadedBy:     p.UserID,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.persist(ctx, doc); err != nil {
		if rmErr := s.storage.Remove(ctx, location); rmErr != nil {
			log.Warn("remove orphaned document failed", zap.String("location", location), zap.Error(rmErr))
		}
		log.Error("persist document failed", zap.Error(err))
		return fail(err, "persist failed")
	}

	log.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("leave_id", lv.ID),
		zap.Int64("size_bytes", doc.SizeBytes),
	)
	return mapToResponse(*doc), nil
}

func (s *service) persist(ctx context.Context, doc *Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	if err := qrepo.Create(ctx, doc); err != nil {
		return err
	}
	if err := rec.Record(ctx, audit.Entry{
		LeaveRequestID: &doc.LeaveRequestID,
		ActorID:        doc.UploadedBy,
		Action:         audit.ActionUpdate,
		FieldChanged:   "document",
		NewValue:       doc.Filename,
	}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) List(ctx context.Context, p domain.Principal, leaveID string) ([]DocumentResponse, error) {
	lv, err := s.leaves.GetByID(ctx, p, leaveID)
	if err != nil {
		return nil, err
	}

	leaveUUID, err := uuid.Parse(lv.ID)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.FindByLeaveRequest(ctx, leaveUUID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list documents failed", zap.Error(err))
		return nil, err
	}

	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

// Download opens a document when the caller may view its leave request.
func (s *service) Download(ctx context.Context, p domain.Principal, id string) (Download, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	docID, err := uuid.Parse(id)
	if err != nil {
		return Download{}, documenterrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Download{}, documenterrors.ErrDocumentNotFound
		}
		return Download{}, err
	}

	if _, err := s.leaves.GetByID(ctx, p, doc.LeaveRequestID.String()); err != nil {
		return Download{}, err
	}

	body, err := s.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			log.Error("document body missing", zap.String("document_id", doc.ID.String()))
			return Download{}, documenterrors.ErrFileMissing
		}
		return Download{}, err
	}

	return Download{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		Body:        body,
	}, nil
}

// sanitizeFilename keeps the display name header safe and makes sure it ends
// with the extension of the detected type.
func sanitizeFilename(name, ext string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == '"', r == '\\', r == '/':
			return '_'
		}
		return r
	}, base)
	if base == "" || base == "." || base == "_" {
		base = "document"
	}
	if len(base) > 200 {
		base = base[:200]
	}
	if !strings.EqualFold(filepath.Ext(base), ext) && !(ext == ".jpg" && strings.EqualFold(filepath.Ext(base), ".jpeg")) {
		base += ext
	}
	return base
}
