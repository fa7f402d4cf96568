package handlers

import (
	"errors"
	"net/http"

	"github.com/aioutlet/sku-service/internal/middleware"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SKUHandler handles HTTP requests for sku operations
type SKUHandler struct {
	skuService services.SKUService
	logger     *zap.Logger
}

// NewSKUHandler creates a new sku handler
func NewSKUHandler(skuService services.SKUService, logger *zap.Logger) *SKUHandler {
	return &SKUHandler{
		skuService: skuService,
		logger:     logger,
	}
}

// Preview godoc
// @Summary Preview skus
// @Description Generate skus for a product snapshot without storing anything
// @Tags SKU
// @Accept json
// @Produce json
// @Param request body models.PreviewRequest true "Product snapshot and optional settings override"
// @Success 200 {object} models.APIResponse{data=models.GenerationResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /skus/preview [post]
func (h *SKUHandler) Preview(c *gin.Context) {
	var request models.PreviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.skuService.Preview(c.Request.Context(), request.Product, request.Config)
	if err != nil {
		h.logger.Warn("Failed to preview skus",
			zap.String("productID", request.Product.ID.String()),
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to generate skus", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "SKUs generated successfully", result)
}

// SaveProduct godoc
// @Summary Save product snapshot
// @Description Store a product snapshot, then generate and store its skus
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param request body models.Product true "Product snapshot"
// @Success 200 {object} models.APIResponse{data=models.GenerationResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/{productId} [put]
func (h *SKUHandler) SaveProduct(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		respondWithError(c, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if product.ID == "" {
		product.ID = models.ID(productID)
	}
	if product.ID.String() != productID {
		respondWithError(c, http.StatusBadRequest, "Product ID does not match the request path",
			errors.New("path and body product ids differ"))
		return
	}

	result, err := h.skuService.SaveProduct(c.Request.Context(), product)
	if err != nil {
		h.logger.Error("Failed to save product",
			zap.String("productID", productID),
			zap.String("userID", c.GetString("userID")),
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to save product", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "Product saved and skus generated successfully", result)
}

// Generate godoc
// @Summary Regenerate skus
// @Description Regenerate and store the skus of a stored product
// @Tags SKU
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.APIResponse{data=models.GenerationResult}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/{productId}/skus [post]
func (h *SKUHandler) Generate(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		respondWithError(c, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	result, err := h.skuService.GenerateForProduct(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to generate skus",
			zap.String("productID", productID),
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to generate skus", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "SKUs generated successfully", result)
}

// GetSKUs godoc
// @Summary Get stored skus
// @Description Get the skus stored for a product
// @Tags SKU
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.APIResponse{data=models.StoredSKUs}
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/{productId}/skus [get]
func (h *SKUHandler) GetSKUs(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		respondWithError(c, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	stored, err := h.skuService.GetSKUs(c.Request.Context(), productID)
	if err != nil {
		statusCode := getErrorStatusCode(err)
		if statusCode == http.StatusInternalServerError {
			h.logger.Error("Failed to get skus",
				zap.String("productID", productID),
				zap.String("correlationID", middleware.GetCorrelationID(c)),
				zap.Error(err))
		}
		respondWithError(c, statusCode, "Failed to get skus", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "SKUs retrieved successfully", stored)
}

// DeleteSKUs godoc
// @Summary Delete stored skus
// @Description Remove the skus stored for a product
// @Tags SKU
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/{productId}/skus [delete]
func (h *SKUHandler) DeleteSKUs(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		respondWithError(c, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	if err := h.skuService.DeleteSKUs(c.Request.Context(), productID); err != nil {
		statusCode := getErrorStatusCode(err)
		if statusCode == http.StatusInternalServerError {
			h.logger.Error("Failed to delete skus",
				zap.String("productID", productID),
				zap.String("correlationID", middleware.GetCorrelationID(c)),
				zap.Error(err))
		}
		respondWithError(c, statusCode, "Failed to delete skus", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "SKUs deleted successfully", nil)
}

// BulkGenerate godoc
// @Summary Regenerate skus in bulk
// @Description Regenerate the skus of several stored products, or of all of them
// @Tags SKU
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BulkGenerateRequest true "Products to regenerate"
// @Success 200 {object} models.APIResponse{data=models.BulkGenerateResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /skus/bulk [post]
func (h *SKUHandler) BulkGenerate(c *gin.Context) {
	var request models.BulkGenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !request.All && len(request.ProductIDs) == 0 {
		respondWithError(c, http.StatusBadRequest, "Either productIds or all is required", nil)
		return
	}

	result, err := h.skuService.BulkGenerate(c.Request.Context(), request)
	if err != nil {
		h.logger.Error("Failed to run bulk sku generation",
			zap.Bool("all", request.All),
			zap.Int("products", len(request.ProductIDs)),
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to generate skus", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "Bulk sku generation finished", result)
}
