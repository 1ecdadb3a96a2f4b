package types

// CursorQuery 游标分页参数，按 ID 倒序
type CursorQuery struct {
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// CursorPage 游标分页结果
type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	NextCursor uint64 `json:"next_cursor"` // 下一页请求携带的游标
	HasMore    bool   `json:"has_more"`
}
