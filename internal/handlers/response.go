package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/aioutlet/sku-service/internal/middleware"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/gin-gonic/gin"
)

func respondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondWithError(c *gin.Context, statusCode int, message string, err error) {
	response := models.ErrorResponse{
		Success:       false,
		Message:       message,
		CorrelationID: middleware.GetCorrelationID(c),
	}

	// Environment-based error details
	isDevelopment := os.Getenv("ENVIRONMENT") == "development" || os.Getenv("GO_ENV") == "development"

	if err != nil {
		if isDevelopment || statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity {
			response.Error = err.Error()
		} else {
			// Don't expose internal error details in production
			switch statusCode {
			case http.StatusNotFound:
				response.Error = "Resource not found"
			case http.StatusConflict:
				response.Error = "Conflict"
			case http.StatusUnauthorized:
				response.Error = "Unauthorized"
			case http.StatusForbidden:
				response.Error = "Forbidden"
			default:
				response.Error = "Internal server error"
			}
		}
	}

	c.JSON(statusCode, response)
}

func getErrorStatusCode(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrMissingVariants):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrSKUsNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, models.ErrReadOnlySettings):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
