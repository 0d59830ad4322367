package handlers

import (
	"errors"
	"net/http"

	"carriertalk/internal/discussion"
	"carriertalk/internal/services"

	"github.com/gin-gonic/gin"
)

// JSONError writes the uniform error shape.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// statusFor maps engine and gateway errors to HTTP status codes.
func statusFor(err error) int {
	var verr discussion.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, discussion.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrTargetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
