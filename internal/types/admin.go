package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a login allowed to run approval and delete operations.
type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login     string    `gorm:"uniqueIndex;not null;column:login" json:"login"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
