package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatorId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Creator     UserModel `gorm:"foreignKey:CreatorId;constraint:OnDelete:RESTRICT"`
	Slug        string    `gorm:"size:255;not null;index"`
	Title       string    `gorm:"size:255;not null"`
	Body        string    `gorm:"type:text;not null"`
	PublishedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PostModel) TableName() string {
	return "posts"
}
