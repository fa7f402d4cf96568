package models

import "time"

// GenerationResult is the output of one generation run
type GenerationResult struct {
	ProductID   ID            `json:"productId"`
	ProductSKU  string        `json:"productSku"`
	VariantSKUs map[ID]string `json:"variantSkus"`
}

// StoredSKUs is what has been persisted for a product
type StoredSKUs struct {
	ProductID   ID            `json:"productId"`
	ProductSKU  *string       `json:"productSku,omitempty"`
	VariantSKUs map[ID]string `json:"variantSkus"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PreviewRequest runs the generator on a supplied snapshot. A nil Config
// means the stored settings are used.
type PreviewRequest struct {
	Product Product           `json:"product"`
	Config  *GenerationConfig `json:"config,omitempty"`
}

// BulkGenerateRequest represents a request to regenerate several products.
// All regenerates every stored snapshot and ignores ProductIDs.
type BulkGenerateRequest struct {
	ProductIDs []string `json:"productIds" binding:"max=500"`
	All        bool     `json:"all"`
}

// BulkItemResult is the outcome for one product of a bulk run
type BulkItemResult struct {
	ProductID ID                `json:"productId"`
	Result    *GenerationResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// BulkGenerateResult summarizes a bulk run
type BulkGenerateResult struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Items     []BulkItemResult `json:"items"`
}

// APIResponse represents the response format for successful operations
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}
