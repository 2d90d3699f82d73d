package query

import "github.com/DavLiendoProgramming/blog-api/internal/application/common"

type UserQueryResult struct {
	Result *common.UserResult `json:"result"`
}

type UserQueryListResult struct {
	Result *common.PageResult[*common.UserResult] `json:"result"`
}
