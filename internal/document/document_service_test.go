package document_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/cha0jun/leavey/internal/audit"
	mock_audit "github.com/cha0jun/leavey/internal/audit/mock"
	"github.com/cha0jun/leavey/internal/document"
	documenterrors "github.com/cha0jun/leavey/internal/document/errors"
	mock_document "github.com/cha0jun/leavey/internal/document/mock"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/leave"
	leaveerrors "github.com/cha0jun/leavey/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	pdfBody = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	pngBody = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	removed []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Put(_ context.Context, name string, r io.Reader) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = b
	return name, nil
}

func (m *memoryStorage) Open(_ context.Context, location string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[location]
	if !ok {
		return nil, document.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryStorage) Remove(_ context.Context, location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, location)
	m.removed = append(m.removed, location)
	return nil
}

type testDeps struct {
	repo     *mock_document.MockRepository
	leaves   *mock_document.MockLeaveReader
	recorder *mock_audit.MockRecorder
	storage  *memoryStorage
	sqlMock  sqlmock.Sqlmock
	svc      document.Service
}

func setup(t *testing.T, maxBytes int64) testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d := testDeps{
		repo:     mock_document.NewMockRepository(ctrl),
		leaves:   mock_document.NewMockLeaveReader(ctrl),
		recorder: mock_audit.NewMockRecorder(ctrl),
		storage:  newMemoryStorage(),
		sqlMock:  sqlMock,
	}
	d.svc = document.NewService(db, d.repo, d.recorder, d.leaves, d.storage, maxBytes)
	return d
}

func (d testDeps) expectTx() {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.recorder.EXPECT().WithTx(gomock.Any()).Return(d.recorder)
}

func ownedLeave(owner uuid.UUID) leave.LeaveResponse {
	return leave.LeaveResponse{ID: uuid.NewString(), UserID: owner.String(), Status: string(leave.StatusPending)}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	owner := domain.Principal{UserID: uuid.New(), Role: domain.RoleContractor}

	t.Run("stores pdf and records audit", func(t *testing.T) {
		d := setup(t, 0)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)
		d.sqlMock.ExpectBegin()
		d.expectTx()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc *document.Document) error {
			assert.Equal(t, "application/pdf", doc.ContentType)
			assert.Equal(t, "sick-note.pdf", doc.Filename)
			assert.Equal(t, int64(len(pdfBody)), doc.SizeBytes)
			assert.Equal(t, owner.UserID, doc.UploadedBy)
			assert.True(t, strings.HasSuffix(doc.StoragePath, ".pdf"))
			return nil
		})
		d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Entry) error {
			assert.Equal(t, audit.ActionUpdate, e.Action)
			assert.Equal(t, "document", e.FieldChanged)
			assert.Equal(t, "sick-note.pdf", e.NewValue)
			return nil
		})
		d.sqlMock.ExpectCommit()

		resp, err := d.svc.Upload(ctx, owner, lv.ID, "sick-note.pdf", bytes.NewReader(pdfBody))

		require.NoError(t, err)
		assert.Equal(t, lv.ID, resp.LeaveRequestID)
		assert.Len(t, d.storage.objects, 1)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("type comes from content not the name", func(t *testing.T) {
		d := setup(t, 0)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)
		d.sqlMock.ExpectBegin()
		d.expectTx()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc *document.Document) error {
			assert.Equal(t, "image/png", doc.ContentType)
			assert.Equal(t, "scan.pdf.png", doc.Filename)
			return nil
		})
		d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		_, err := d.svc.Upload(ctx, owner, lv.ID, "scan.pdf", bytes.NewReader(pngBody))

		require.NoError(t, err)
	})

	t.Run("negative disallowed type", func(t *testing.T) {
		d := setup(t, 0)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)

		_, err := d.svc.Upload(ctx, owner, lv.ID, "note.pdf", strings.NewReader("just some text"))

		assert.ErrorIs(t, err, documenterrors.ErrFileTypeNotAllowed)
		assert.Empty(t, d.storage.objects)
	})

	t.Run("negative too large", func(t *testing.T) {
		d := setup(t, 16)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)

		_, err := d.svc.Upload(ctx, owner, lv.ID, "big.pdf", bytes.NewReader(pdfBody))

		assert.ErrorIs(t, err, documenterrors.ErrFileTooLarge)
	})

	t.Run("negative empty file", func(t *testing.T) {
		d := setup(t, 0)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)

		_, err := d.svc.Upload(ctx, owner, lv.ID, "empty.pdf", bytes.NewReader(nil))

		assert.ErrorIs(t, err, documenterrors.ErrFileEmpty)
	})

	t.Run("negative manager cannot attach to someone else's leave", func(t *testing.T) {
		d := setup(t, 0)
		manager := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), manager, lv.ID).Return(lv, nil)

		_, err := d.svc.Upload(ctx, manager, lv.ID, "x.pdf", bytes.NewReader(pdfBody))

		assert.ErrorIs(t, err, documenterrors.ErrNotOwner)
	})

	t.Run("negative leave not visible", func(t *testing.T) {
		d := setup(t, 0)
		id := uuid.NewString()
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, id).Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveForbidden)

		_, err := d.svc.Upload(ctx, owner, id, "x.pdf", bytes.NewReader(pdfBody))

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveForbidden)
	})

	t.Run("negative db failure removes stored object", func(t *testing.T) {
		d := setup(t, 0)
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)
		d.sqlMock.ExpectBegin()
		d.expectTx()
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Upload(ctx, owner, lv.ID, "x.pdf", bytes.NewReader(pdfBody))

		assert.EqualError(t, err, "insert failed")
		assert.Empty(t, d.storage.objects)
		assert.Len(t, d.storage.removed, 1)
	})

	t.Run("negative storage failure", func(t *testing.T) {
		d := setup(t, 0)
		d.storage.putErr = errors.New("disk full")
		lv := ownedLeave(owner.UserID)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, lv.ID).Return(lv, nil)

		_, err := d.svc.Upload(ctx, owner, lv.ID, "x.pdf", bytes.NewReader(pdfBody))

		assert.EqualError(t, err, "disk full")
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()
	manager := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}

	d := setup(t, 0)
	lv := ownedLeave(uuid.New())
	leaveID := uuid.MustParse(lv.ID)
	d.leaves.EXPECT().GetByID(gomock.Any(), manager, lv.ID).Return(lv, nil)
	d.repo.EXPECT().FindByLeaveRequest(gomock.Any(), leaveID).Return([]document.Document{
		{ID: uuid.New(), LeaveRequestID: leaveID, Filename: "a.pdf"},
		{ID: uuid.New(), LeaveRequestID: leaveID, Filename: "b.png"},
	}, nil)

	resp, err := d.svc.List(ctx, manager, lv.ID)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "a.pdf", resp[0].Filename)
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()
	owner := domain.Principal{UserID: uuid.New(), Role: domain.RoleContractor}

	t.Run("opens body for a viewer", func(t *testing.T) {
		d := setup(t, 0)
		doc := &document.Document{ID: uuid.New(), LeaveRequestID: uuid.New(), Filename: "a.pdf", StoragePath: "obj.pdf", ContentType: "application/pdf", SizeBytes: int64(len(pdfBody))}
		d.storage.objects["obj.pdf"] = pdfBody
		d.repo.EXPECT().FindByID(gomock.Any(), doc.ID).Return(doc, nil)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, doc.LeaveRequestID.String()).Return(leave.LeaveResponse{}, nil)

		dl, err := d.svc.Download(ctx, owner, doc.ID.String())

		require.NoError(t, err)
		defer dl.Body.Close()
		got, _ := io.ReadAll(dl.Body)
		assert.Equal(t, pdfBody, got)
		assert.Equal(t, "a.pdf", dl.Filename)
	})

	t.Run("negative other contractor", func(t *testing.T) {
		d := setup(t, 0)
		doc := &document.Document{ID: uuid.New(), LeaveRequestID: uuid.New(), StoragePath: "obj.pdf"}
		d.repo.EXPECT().FindByID(gomock.Any(), doc.ID).Return(doc, nil)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, doc.LeaveRequestID.String()).Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveForbidden)

		_, err := d.svc.Download(ctx, owner, doc.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveForbidden)
	})

	t.Run("negative body missing", func(t *testing.T) {
		d := setup(t, 0)
		doc := &document.Document{ID: uuid.New(), LeaveRequestID: uuid.New(), StoragePath: "gone.pdf"}
		d.repo.EXPECT().FindByID(gomock.Any(), doc.ID).Return(doc, nil)
		d.leaves.EXPECT().GetByID(gomock.Any(), owner, doc.LeaveRequestID.String()).Return(leave.LeaveResponse{}, nil)

		_, err := d.svc.Download(ctx, owner, doc.ID.String())

		assert.ErrorIs(t, err, documenterrors.ErrFileMissing)
	})

	t.Run("negative unknown and malformed ids", func(t *testing.T) {
		d := setup(t, 0)
		id := uuid.New()
		d.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.Download(ctx, owner, id.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)

		_, err = d.svc.Download(ctx, owner, "nope")
		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentID)
	})
}
