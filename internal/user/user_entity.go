package user

import (
	"time"

	"github.com/cha0jun/leavey/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local shadow of an identity provider account. Users are never
// deleted, only deactivated.
type User struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	ExternalID string      `gorm:"column:external_id;type:varchar(255);not null;uniqueIndex:uq_users_external_id"`
	Email      string      `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	FullName   string      `gorm:"column:full_name;type:varchar(255);not null"`
	Role       domain.Role `gorm:"column:role;type:varchar(20);not null;index"`
	VendorID   *string     `gorm:"column:vendor_id;type:varchar(100);index"`
	Department *string     `gorm:"column:department;type:varchar(100)"`
	ManagerID  *uuid.UUID  `gorm:"column:manager_id;type:uuid"`
	IsActive   bool        `gorm:"column:is_active;not null"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u User) Principal() domain.Principal {
	return domain.Principal{
		UserID:   u.ID,
		Role:     u.Role,
		VendorID: u.VendorID,
	}
}
