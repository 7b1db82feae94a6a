package user

import (
	"context"
	"database/sql"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/scope"
	"github.com/cha0jun/leavey/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	Role   *domain.Role
	Offset int
	Limit  int
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	FindAll(ctx context.Context, f Filter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	var u User
	if err := r.conn(ctx).First(&u, "external_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]User, int64, error) {
	q := r.conn(ctx).Model(&User{})
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Scopes(scope.Paginate(f.Offset, f.Limit)).
		Order("full_name ASC, id ASC").
		Find(&users).Error
	return users, total, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}
