package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveCategory decides whether new requests of this kind are billable.
// Changing IsChargeable never touches requests that already exist.
type LeaveCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_categories_name"`
	IsChargeable bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (LeaveCategory) TableName() string {
	return "leave_categories"
}

func (c *LeaveCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
