package reconciliation

import (
	"context"
	"database/sql"

	"github.com/cha0jun/leavey/internal/domain"

	"gorm.io/gorm"
)

const statusApproved = "APPROVED"

//go:generate mockgen -source=reconciliation_repo.go -destination=mock/reconciliation_repo_mock.go -package=mock
type Repository interface {
	// Snapshot reads the contractor pool and the approved leave starting in
	// period from one consistent read.
	Snapshot(ctx context.Context, period Period, vendorID *string) ([]Contractor, []ApprovedLeave, error)
}

type repository struct {
	db     *gorm.DB
	txOpts *sql.TxOptions
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db:     db,
		txOpts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	}
}

// NewRepositoryWithTxOptions is for drivers that reject isolation levels.
func NewRepositoryWithTxOptions(db *gorm.DB, opts *sql.TxOptions) Repository {
	return &repository{db: db, txOpts: opts}
}

func (r *repository) Snapshot(ctx context.Context, period Period, vendorID *string) ([]Contractor, []ApprovedLeave, error) {
	var (
		contractors []Contractor
		leaves      []ApprovedLeave
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cq := tx.Model(&Contractor{}).
			Select("id", "full_name", "vendor_id", "is_active").
			Where("role = ?", string(domain.RoleContractor))
		if vendorID != nil {
			cq = cq.Where("vendor_id = ?", *vendorID)
		}
		if err := cq.Order("full_name ASC, id ASC").Find(&contractors).Error; err != nil {
			return err
		}

		lq := tx.Model(&ApprovedLeave{}).
			Select("leave_requests.id", "leave_requests.user_id", "leave_requests.start_date",
				"leave_requests.total_days", "leave_requests.cached_chargeable_status").
			Where("leave_requests.status = ?", statusApproved).
			Where("leave_requests.start_date >= ? AND leave_requests.start_date <= ?", period.Start, period.End)
		if vendorID != nil {
			lq = lq.Joins("JOIN users ON users.id = leave_requests.user_id").
				Where("users.vendor_id = ?", *vendorID)
		}
		return lq.Order("leave_requests.start_date ASC, leave_requests.id ASC").Find(&leaves).Error
	}, r.txOpts)

	return contractors, leaves, err
}
