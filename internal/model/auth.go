package model

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

type VerifyOtpRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Otp     string `json:"otp" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

type ResendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type GoogleSignInRequest struct {
	AuthCode string `json:"authCode" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type RejectEmployerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

type EmployerProfileRequest struct {
	Name               string `json:"name"`
	PhoneNumber        string `json:"phoneNumber"`
	CompanyDescription string `json:"companyDescription"`
	Website            string `json:"website"`
}

type MessageResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserType string `json:"userType,omitempty"`
}

// AuthResult is the response shape shared by login, Google sign-in and
// refresh. RefreshToken is empty on refresh (the token is not rotated).
type AuthResult struct {
	AccessToken     string  `json:"accessToken"`
	RefreshToken    string  `json:"refreshToken,omitempty"`
	Role            Role    `json:"role"`
	Name            string  `json:"name"`
	UserID          string  `json:"userId"`
	Blocked         bool    `json:"blocked"`
	Verified        *bool   `json:"verified,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
