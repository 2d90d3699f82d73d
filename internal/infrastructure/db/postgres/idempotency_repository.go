package postgres

import (
	"context"
	"errors"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"gorm.io/gorm"
)

type IdempotencyRepository struct {
	db *gorm.DB
}

func NewIdempotencyRepository(db *gorm.DB) repositories.IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (*entities.IdempotencyRecord, error) {
	var model IdempotencyRecordModel
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.IdempotencyRecord{
		Id:          model.Id,
		Key:         model.Key,
		RequestHash: model.RequestHash,
		Response:    model.Response,
		StatusCode:  model.StatusCode,
		CreatedAt:   model.CreatedAt,
	}, nil
}

// Create stores record. A concurrent insert of the same key surfaces as
// gorm.ErrDuplicatedKey; the caller keeps its own response.
func (r *IdempotencyRepository) Create(ctx context.Context, record *entities.IdempotencyRecord) (*entities.IdempotencyRecord, error) {
	model := IdempotencyRecordModel{
		Id:          record.Id,
		Key:         record.Key,
		RequestHash: record.RequestHash,
		Response:    record.Response,
		StatusCode:  record.StatusCode,
		CreatedAt:   record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return record, nil
}
