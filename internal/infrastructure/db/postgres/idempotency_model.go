package postgres

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecordModel struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key         string    `gorm:"column:idempotency_key;size:255;uniqueIndex;not null"`
	RequestHash string    `gorm:"size:64;not null"`
	Response    string    `gorm:"type:text"`
	StatusCode  int
	CreatedAt   time.Time
}

func (IdempotencyRecordModel) TableName() string {
	return "idempotency_records"
}
