package postgres

import (
	"context"
	"errors"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	postModel := r.mapToModel(post)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(postModel).Error; err != nil {
		return nil, err
	}
	return r.mapToEntity(postModel), nil
}

func (r *PostRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Post, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// FindBySlug returns the newest live post carrying slug.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Where("slug = ?", slug).Order("created_at DESC").Order("id DESC"))
}

func (r *PostRepository) findOne(ctx context.Context, q *gorm.DB) (*entities.Post, error) {
	var postModel PostModel
	if err := q.First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&postModel), nil
}

func (r *PostRepository) ListAll(ctx context.Context, page int) (entities.Page[*entities.Post], error) {
	return r.list(ctx, page, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *PostRepository) ListByCreator(ctx context.Context, creatorId uuid.UUID, page int) (entities.Page[*entities.Post], error) {
	return r.list(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", creatorId)
	})
}

func (r *PostRepository) list(ctx context.Context, page int, scope func(*gorm.DB) *gorm.DB) (entities.Page[*entities.Post], error) {
	page = entities.NormalizePage(page)
	result := entities.Page[*entities.Post]{CurrentPage: page, PerPage: entities.PageSize}

	if err := r.db.WithContext(ctx).Model(&PostModel{}).Scopes(scope).Count(&result.Total).Error; err != nil {
		return result, err
	}

	var models []PostModel
	if err := r.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC").Order("id DESC").
		Limit(entities.PageSize).Offset(entities.Offset(page)).
		Find(&models).Error; err != nil {
		return result, err
	}

	result.Items = make([]*entities.Post, 0, len(models))
	for i := range models {
		result.Items = append(result.Items, r.mapToEntity(&models[i]))
	}
	return result, nil
}

// Update writes the editable columns of a live post.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	res := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", post.Id).Updates(map[string]interface{}{
		"title":        post.Title,
		"slug":         post.Slug,
		"body":         post.Body,
		"published_at": post.PublishedAt,
		"updated_at":   post.UpdatedAt,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return r.FindById(ctx, post.Id)
}

// Delete marks the post deleted; the row stays in storage.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&PostModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *PostRepository) mapToModel(post *entities.Post) *PostModel {
	return &PostModel{
		Id:          post.Id,
		CreatorId:   post.CreatorId,
		Slug:        post.Slug,
		Title:       post.Title,
		Body:        post.Body,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func (r *PostRepository) mapToEntity(postModel *PostModel) *entities.Post {
	post := &entities.Post{
		Id:          postModel.Id,
		CreatorId:   postModel.CreatorId,
		Slug:        postModel.Slug,
		Title:       postModel.Title,
		Body:        postModel.Body,
		PublishedAt: postModel.PublishedAt.UTC(),
		CreatedAt:   postModel.CreatedAt.UTC(),
		UpdatedAt:   postModel.UpdatedAt.UTC(),
	}
	if postModel.DeletedAt.Valid {
		deletedAt := postModel.DeletedAt.Time.UTC()
		post.DeletedAt = &deletedAt
	}
	return post
}
