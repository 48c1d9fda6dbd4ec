package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

// AdminHandler exposes the admin-driven employer trust-state transitions and
// the blocked toggles.
type AdminHandler struct {
	employers  *service.EmployerService
	candidates *service.CandidateService
}

func NewAdminHandler(employers *service.EmployerService, candidates *service.CandidateService) *AdminHandler {
	return &AdminHandler{employers: employers, candidates: candidates}
}

func (h *AdminHandler) VerifyEmployer(c *gin.Context) {
	employer, err := h.employers.VerifyEmployer(c.Request.Context(), c.Param("id"))
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

func (h *AdminHandler) RejectEmployer(c *gin.Context) {
	var req model.RejectEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	employer, err := h.employers.RejectEmployer(c.Request.Context(), c.Param("id"), req.Reason)
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

func (h *AdminHandler) BlockEmployer(c *gin.Context) {
	var req model.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	employer, err := h.employers.SetBlocked(c.Request.Context(), c.Param("id"), req.Blocked)
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

func (h *AdminHandler) BlockCandidate(c *gin.Context) {
	var req model.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	candidate, err := h.candidates.SetBlocked(c.Request.Context(), c.Param("id"), req.Blocked)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}
	c.JSON(http.StatusOK, candidate)
}
