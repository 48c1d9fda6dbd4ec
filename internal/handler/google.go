package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

type GoogleHandler struct {
	google *service.GoogleAuthService
}

func NewGoogleHandler(google *service.GoogleAuthService) *GoogleHandler {
	return &GoogleHandler{google: google}
}

func (h *GoogleHandler) SignIn(c *gin.Context) {
	var req model.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	result, err := h.google.SignIn(c.Request.Context(), req.AuthCode, role)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
