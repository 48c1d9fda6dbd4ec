package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login resolves the email across all three roles; which store matched is
// reported back in the role field.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout always succeeds; revoking an already-absent token is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req model.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	h.auth.Logout(c.Request.Context(), req.RefreshToken)
	c.JSON(http.StatusOK, model.AuthLogoutResponse{Status: "logged_out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, model.AuthMeResponse{
		UserID: user.UserID,
		Role:   user.Role,
	})
}
