package mapper

import (
	"github.com/DavLiendoProgramming/blog-api/internal/application/common"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:        user.Id,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Name:      user.Name,
		Email:     user.Email,
	}
}

func NewUserPageResult(page entities.Page[*entities.User]) *common.PageResult[*common.UserResult] {
	return NewPageResult(entities.MapPage(page, NewUserResultFromEntity))
}
