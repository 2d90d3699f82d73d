package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	// Hash password before saving
	if err := userEntity.HashPassword(); err != nil {
		return nil, err
	}

	userModel := UserModel{
		Id:        userEntity.Id,
		CreatedAt: userEntity.CreatedAt,
		UpdatedAt: userEntity.UpdatedAt,
		Name:      userEntity.Name,
		Email:     userEntity.Email,
		Password:  userEntity.Password,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, entities.ErrDuplicateEmail
		}
		return nil, err
	}

	return r.mapToEntity(&userModel), nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", entities.NormalizeEmail(email))
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&userModel), nil
}

func (r *UserRepository) List(ctx context.Context, page int) (entities.Page[*entities.User], error) {
	page = entities.NormalizePage(page)
	result := entities.Page[*entities.User]{CurrentPage: page, PerPage: entities.PageSize}

	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").
		Limit(entities.PageSize).Offset(entities.Offset(page)).
		Find(&models).Error; err != nil {
		return result, err
	}

	result.Items = make([]*entities.User, 0, len(models))
	for i := range models {
		result.Items = append(result.Items, r.mapToEntity(&models[i]))
	}
	return result, nil
}

// Delete soft-deletes the user and every live post they created.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&UserModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		if err := tx.Where("creator_id = ?", id).Delete(&PostModel{}).Error; err != nil {
			return fmt.Errorf("delete posts of user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) mapToEntity(userModel *UserModel) *entities.User {
	return &entities.User{
		Id:        userModel.Id,
		CreatedAt: userModel.CreatedAt.UTC(),
		UpdatedAt: userModel.UpdatedAt.UTC(),
		Name:      userModel.Name,
		Email:     userModel.Email,
		Password:  userModel.Password,
	}
}
