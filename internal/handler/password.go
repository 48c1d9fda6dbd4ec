package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

type PasswordHandler struct {
	passwords *service.PasswordService
}

func NewPasswordHandler(passwords *service.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwords: passwords}
}

func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.passwords.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "OTP sent to your email for password reset",
	})
}

func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.passwords.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}
