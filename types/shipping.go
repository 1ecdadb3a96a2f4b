package types

import "github.com/shopspring/decimal"

type ShippingOptionRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays int             `json:"estimated_days" binding:"gte=0"`
	IsActive      *bool           `json:"is_active"`
}
