package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Email is unique among live users only, so a deleted account's address
// can register again.
type UserModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	Name      string         `gorm:"size:100;not null"`
	Email     string         `gorm:"size:100;not null;uniqueIndex:idx_users_email_live,where:deleted_at IS NULL"`
	Password  string         `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
