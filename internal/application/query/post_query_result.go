package query

import "github.com/DavLiendoProgramming/blog-api/internal/application/common"

type PostQueryResult struct {
	Result *common.PostResult `json:"result"`
}

type PostQueryListResult struct {
	Result *common.PageResult[*common.PostResult] `json:"result"`
}
