package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var errMissingSubject = errors.New("user ID not found in token")

// AuthMiddleware validates JWT tokens and extracts user information
func AuthMiddleware(secretKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", nil)
			return
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must start with 'Bearer '", nil)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "JWT token is required", nil)
			return
		}

		claims, err := parseToken(tokenString, secretKey)
		if err != nil {
			logger.Debug("Rejected JWT token",
				zap.String("correlationID", GetCorrelationID(c)),
				zap.Error(err))
			abortUnauthorized(c, "Invalid JWT token", err)
			return
		}

		if err := setClaims(c, claims); err != nil {
			abortUnauthorized(c, "User ID not found in token", nil)
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware validates JWT tokens if present but doesn't require them
func OptionalAuthMiddleware(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := parseToken(tokenString, secretKey); err == nil {
			_ = setClaims(c, claims)
		}

		c.Next()
	}
}

func parseToken(tokenString, secretKey string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid JWT token claims")
	}
	return claims, nil
}

// setClaims copies user information into the Gin context
func setClaims(c *gin.Context, claims jwt.MapClaims) error {
	// try 'sub' first, then 'id'
	var userID string
	if sub, exists := claims["sub"].(string); exists {
		userID = sub
	} else if id, exists := claims["id"].(string); exists {
		userID = id
	} else {
		return errMissingSubject
	}
	c.Set("userID", userID)

	if email, exists := claims["email"].(string); exists {
		c.Set("userEmail", email)
	}
	if role, exists := claims["role"].(string); exists {
		c.Set("userRole", role)
	}
	if username, exists := claims["username"].(string); exists {
		c.Set("username", username)
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}
