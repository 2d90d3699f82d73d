package postgres

import "time"

type RevokedTokenModel struct {
	Jti       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (RevokedTokenModel) TableName() string {
	return "revoked_tokens"
}
