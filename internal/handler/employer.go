package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

type EmployerHandler struct {
	employers *service.EmployerService
}

func NewEmployerHandler(employers *service.EmployerService) *EmployerHandler {
	return &EmployerHandler{employers: employers}
}

// UpdateProfile applies a resubmission for the authenticated employer. The
// trust state returns to pending.
func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil || user.Role != model.RoleEmployer {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req model.EmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	employer, err := h.employers.UpdateProfile(c.Request.Context(), user.UserID, req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	if employer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employer not found"})
		return
	}
	c.JSON(http.StatusOK, employer)
}

func (h *EmployerHandler) GetProfile(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil || user.Role != model.RoleEmployer {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	employer, err := h.employers.GetEmployer(c.Request.Context(), user.UserID)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	if employer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employer not found"})
		return
	}
	c.JSON(http.StatusOK, employer)
}
