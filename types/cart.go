package types

type AddCartItemRequest struct {
	ProductID uint64  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Size      *string `json:"size" binding:"omitempty,max=32"`
	Color     *string `json:"color" binding:"omitempty,max=32"`
}

// UpdateCartItemRequest 字段为空表示不修改
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	Size     *string `json:"size" binding:"omitempty,max=32"`
	Color    *string `json:"color" binding:"omitempty,max=32"`
}
