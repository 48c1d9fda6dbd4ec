package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahnacm97/Talentra/internal/model"
	"github.com/rahnacm97/Talentra/internal/service"
)

type OtpHandler struct {
	otp *service.OtpService
}

func NewOtpHandler(otp *service.OtpService) *OtpHandler {
	return &OtpHandler{otp: otp}
}

// Signup stages a registration and emails an OTP; no identity exists until
// the OTP is verified.
func (h *OtpHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if role == model.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	userType, err := h.otp.Signup(c.Request.Context(), req.Email, req.Password, req.FullName, req.PhoneNumber, role)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success:  true,
		Message:  "OTP sent to your email",
		UserType: userType.String(),
	})
}

func (h *OtpHandler) VerifyOtp(c *gin.Context) {
	var req model.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	purpose, err := model.ParseOtpPurpose(req.Purpose)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purpose"})
		return
	}

	userType, err := h.otp.VerifyOtp(c.Request.Context(), req.Email, req.Otp, purpose)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	resp := model.MessageResponse{Success: true, Message: "OTP verified successfully"}
	if purpose == model.OtpPurposeSignup {
		resp.Message = "Email verified successfully"
		resp.UserType = userType.String()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OtpHandler) ResendOtp(c *gin.Context) {
	var req model.ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.otp.ResendOtp(c.Request.Context(), req.Email); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "New OTP sent to your email",
	})
}
