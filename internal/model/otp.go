package model

import (
	"fmt"
	"time"
)

// OtpPurpose distinguishes otherwise-identical OTP records. Signup records
// carry the staged registration payload; forgot-password records do not.
type OtpPurpose string

const (
	OtpPurposeSignup         OtpPurpose = "signup"
	OtpPurposeForgotPassword OtpPurpose = "forgot-password"
)

func ParseOtpPurpose(s string) (OtpPurpose, error) {
	switch OtpPurpose(s) {
	case OtpPurposeSignup, OtpPurposeForgotPassword:
		return OtpPurpose(s), nil
	}
	return "", fmt.Errorf("invalid otp purpose %q", s)
}

// OtpRecord is single-use: IsUsed flips to true on successful verification
// and the record is never reused. FullName/PhoneNumber/PasswordHash/UserType
// are the staged signup payload, empty for forgot-password records.
type OtpRecord struct {
	ID           int64
	Email        string
	Otp          string
	Purpose      OtpPurpose
	IsUsed       bool
	ExpiresAt    time.Time
	Token        string
	FullName     string
	PhoneNumber  string
	PasswordHash string
	UserType     Role
	CreatedAt    time.Time
}

func (r *OtpRecord) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
