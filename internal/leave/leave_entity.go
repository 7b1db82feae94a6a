package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

type SyncStatus string

const (
	SyncNotSynced SyncStatus = "NOT_SYNCED"
	SyncSynced    SyncStatus = "SYNCED"
	SyncError     SyncStatus = "ERROR"
)

// LeaveRequest is one contractor absence. CachedChargeableStatus is copied
// from the category at creation and never rewritten.
type LeaveRequest struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReferenceNo            string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_requests_reference_no"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_user"`
	CategoryID             uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate              time.Time  `gorm:"type:date;not null;index:idx_leave_requests_status_start,priority:2"`
	EndDate                time.Time  `gorm:"type:date;not null"`
	TotalDays              float64    `gorm:"not null"`
	Reason                 string     `gorm:"type:text"`
	AttachmentURL          *string    `gorm:"type:text"`
	Status                 Status     `gorm:"type:varchar(20);not null;index:idx_leave_requests_status_start,priority:1"`
	CachedChargeableStatus bool       `gorm:"not null"`
	ExternalSyncStatus     SyncStatus `gorm:"type:varchar(20);not null"`
	ExternalReferenceID    *string    `gorm:"type:varchar(100)"`
	ProcessedBy            *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt             *time.Time
	CreatedAt              time.Time `gorm:"not null;index:idx_leave_requests_created_at"`
	UpdatedAt              time.Time

	User     *LeaveOwner       `gorm:"foreignKey:UserID;references:ID"`
	Category *LeaveCategoryRef `gorm:"foreignKey:CategoryID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LeaveOwner is the read side of users needed by the workflow and the sync payload.
type LeaveOwner struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalID string     `gorm:"column:external_id"`
	FullName   string     `gorm:"column:full_name"`
	Email      string     `gorm:"column:email"`
	VendorID   *string    `gorm:"column:vendor_id"`
	Department *string    `gorm:"column:department"`
	ManagerID  *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	IsActive   bool       `gorm:"column:is_active"`
}

func (LeaveOwner) TableName() string {
	return "users"
}

type LeaveCategoryRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"column:name"`
	IsChargeable bool      `gorm:"column:is_chargeable"`
}

func (LeaveCategoryRef) TableName() string {
	return "leave_categories"
}
