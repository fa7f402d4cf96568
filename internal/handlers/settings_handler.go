package handlers

import (
	"net/http"

	"github.com/aioutlet/sku-service/internal/middleware"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes the generation settings
type SettingsHandler struct {
	skuService services.SKUService
	logger     *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(skuService services.SKUService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		skuService: skuService,
		logger:     logger,
	}
}

// GetSettings godoc
// @Summary Get generation settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.GenerationConfig}
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	cfg, err := h.skuService.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load settings",
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to load settings", err)
		return
	}

	respondWithSuccess(c, http.StatusOK, "Settings retrieved successfully", cfg)
}

// UpdateSettings godoc
// @Summary Update generation settings
// @Description Validate and store new generation settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerationConfig true "Generation settings"
// @Success 200 {object} models.APIResponse{data=models.GenerationConfig}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var request models.GenerationConfig
	if err := c.ShouldBindJSON(&request); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := h.skuService.UpdateSettings(c.Request.Context(), request)
	if err != nil {
		h.logger.Warn("Failed to update settings",
			zap.String("userID", c.GetString("userID")),
			zap.String("correlationID", middleware.GetCorrelationID(c)),
			zap.Error(err))
		respondWithError(c, getErrorStatusCode(err), "Failed to update settings", err)
		return
	}

	h.logger.Info("Settings updated",
		zap.String("userID", c.GetString("userID")),
		zap.String("correlationID", middleware.GetCorrelationID(c)))

	respondWithSuccess(c, http.StatusOK, "Settings updated successfully", cfg)
}
