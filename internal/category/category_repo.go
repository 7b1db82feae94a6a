package category

import (
	"context"
	"database/sql"

	"github.com/cha0jun/leavey/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=category_repo.go -destination=mock/category_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]LeaveCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveCategory, error)
	Create(ctx context.Context, c *LeaveCategory) error
	Update(ctx context.Context, c *LeaveCategory) error
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

func (r *repository) FindAll(ctx context.Context) ([]LeaveCategory, error) {
	var categories []LeaveCategory
	err := r.conn(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveCategory, error) {
	var c LeaveCategory
	if err := r.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *LeaveCategory) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, c *LeaveCategory) error {
	return r.conn(ctx).
		Model(&LeaveCategory{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":          c.Name,
			"is_chargeable": c.IsChargeable,
			"updated_at":    c.UpdatedAt,
		}).Error
}
