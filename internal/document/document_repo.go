package document

import (
	"context"
	"database/sql"

	"github.com/cha0jun/leavey/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByLeaveRequest(ctx context.Context, leaveID uuid.UUID) ([]Document, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var d Document
	if err := r.conn(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByLeaveRequest(ctx context.Context, leaveID uuid.UUID) ([]Document, error) {
	var docs []Document
	err := r.conn(ctx).
		Where("leave_request_id = ?", leaveID).
		Order("created_at ASC, id ASC").
		Find(&docs).Error
	return docs, err
}
