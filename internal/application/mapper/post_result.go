package mapper

import (
	"github.com/DavLiendoProgramming/blog-api/internal/application/common"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
)

func NewPostResultFromEntity(post *entities.Post) *common.PostResult {
	return &common.PostResult{
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

func NewPostPageResult(page entities.Page[*entities.Post]) *common.PageResult[*common.PostResult] {
	return NewPageResult(entities.MapPage(page, NewPostResultFromEntity))
}

func NewPageResult[T any](page entities.Page[T]) *common.PageResult[T] {
	data := page.Items
	if data == nil {
		data = []T{}
	}
	return &common.PageResult[T]{
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
		LastPage:    page.LastPage(),
		Data:        data,
	}
}
