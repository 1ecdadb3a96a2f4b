package types

import "github.com/shopspring/decimal"

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type ProductRequest struct {
	CategoryID    *uint64         `json:"category_id"`
	Name          string          `json:"name" binding:"required,max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock" binding:"gte=0"`
	LoyaltyPoints int64           `json:"loyalty_points" binding:"gte=0"`
	Status        *int8           `json:"status" binding:"omitempty,oneof=0 1"`
	Sizes         []string        `json:"sizes" binding:"omitempty,dive,required,max=32"`
	Colors        []string        `json:"colors" binding:"omitempty,dive,required,max=32"`
}

type ProductListQuery struct {
	CursorQuery
	CategoryID uint64 `form:"category_id"`
}

type ProductDetail struct {
	ID            uint64          `json:"id"`
	CategoryID    *uint64         `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	LoyaltyPoints int64           `json:"loyalty_points"`
	CoverImage    string          `json:"cover_image"`
	Status        int8            `json:"status"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	AvgRating     float64         `json:"avg_rating"`
	ReviewCount   int64           `json:"review_count"`
}

type UploadImageResp struct {
	Url    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
