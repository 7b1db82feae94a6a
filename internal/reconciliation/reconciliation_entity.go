package reconciliation

import (
	"time"

	"github.com/google/uuid"
)

// Contractor is the read model of a billable user.
type Contractor struct {
	ID       uuid.UUID `gorm:"column:id"`
	FullName string    `gorm:"column:full_name"`
	VendorID *string   `gorm:"column:vendor_id"`
	IsActive bool      `gorm:"column:is_active"`
}

func (Contractor) TableName() string {
	return "users"
}

// ApprovedLeave carries only what the billing rule reads. Chargeable is the
// snapshot taken at request creation, never the live category flag.
type ApprovedLeave struct {
	ID         uuid.UUID `gorm:"column:id"`
	UserID     uuid.UUID `gorm:"column:user_id"`
	StartDate  time.Time `gorm:"column:start_date"`
	TotalDays  float64   `gorm:"column:total_days"`
	Chargeable bool      `gorm:"column:cached_chargeable_status"`
}

func (ApprovedLeave) TableName() string {
	return "leave_requests"
}
