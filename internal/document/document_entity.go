package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename       string    `gorm:"type:varchar(255);not null"`
	StoragePath    string    `gorm:"type:text;not null"`
	ContentType    string    `gorm:"type:varchar(100);not null"`
	SizeBytes      int64     `gorm:"not null"`
	UploadedBy     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
