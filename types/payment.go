package types

type PaymentMethodRequest struct {
	Type      string `json:"type" binding:"required,oneof=card paypal bank"`
	Provider  string `json:"provider" binding:"max=50"`
	Last4     string `json:"last4" binding:"omitempty,len=4,numeric"`
	Expires   string `json:"expires" binding:"omitempty,len=5"` // MM/YY
	IsDefault bool   `json:"is_default"`
}
