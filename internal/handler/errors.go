package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/service"
)

// writeAuthError maps service sentinel errors to HTTP responses. Anything
// unrecognized is an internal failure and is never leaked to the caller.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrAccountBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "your account has been blocked by admin"})
	case errors.Is(err, service.ErrOtpNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "otp verification required"})
	case errors.Is(err, service.ErrInvalidOtp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid otp"})
	case errors.Is(err, service.ErrOtpExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "otp has expired"})
	case errors.Is(err, service.ErrOtpStillValid):
		c.JSON(http.StatusConflict, gin.H{"error": "a valid otp already exists"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrRoleMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered under a different role"})
	case errors.Is(err, service.ErrNoPendingSignup):
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending signup for this email"})
	case errors.Is(err, service.ErrNoAccount):
		c.JSON(http.StatusNotFound, gin.H{"error": "no account found with this email"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
