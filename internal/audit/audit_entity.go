package audit

import (
	"time"

	auditerrors "github.com/cha0jun/leavey/internal/audit/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Action string

const (
	ActionCreate     Action = "CREATE"
	ActionUpdate     Action = "UPDATE"
	ActionDelete     Action = "DELETE"
	ActionUpdateUser Action = "UPDATE_USER"
)

// AuditLog is append only. The update and delete hooks refuse any change
// after the row is written.
type AuditLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LeaveRequestID *uuid.UUID `gorm:"type:uuid;index:idx_audit_logs_leave_request"`
	ActorUserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_logs_actor"`
	Action         Action     `gorm:"type:varchar(20);not null"`
	FieldChanged   *string    `gorm:"type:varchar(100)"`
	OldValue       *string    `gorm:"type:text"`
	NewValue       *string    `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"not null;index:idx_audit_logs_created_at"`

	Actor *AuditActor `gorm:"foreignKey:ActorUserID;references:ID"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (AuditLog) BeforeUpdate(*gorm.DB) error {
	return auditerrors.ErrAuditLogImmutable
}

func (AuditLog) BeforeDelete(*gorm.DB) error {
	return auditerrors.ErrAuditLogImmutable
}

// AuditActor is the slice of users needed to render who made a change.
type AuditActor struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
	Role     string    `gorm:"column:role"`
}

func (AuditActor) TableName() string {
	return "users"
}
