package model

import "time"

// Candidate and Employer share the credential columns; either PasswordHash
// or GoogleID must be set, never neither. Credential material never
// serializes into responses.
type Candidate struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"`
	GoogleID     *string   `json:"-"`
	PhoneNumber  string    `json:"phoneNumber"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Employer struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       *string   `json:"-"`
	GoogleID           *string   `json:"-"`
	PhoneNumber        string    `json:"phoneNumber"`
	Blocked            bool      `json:"blocked"`
	Verified           bool      `json:"verified"`
	RejectionReason    *string   `json:"rejectionReason,omitempty"`
	CompanyDescription string    `json:"companyDescription"`
	Website            string    `json:"website"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Admin accounts are provisioned with a password and have no blocked or
// verified state.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthUser is the normalized view the user-auth resolution service returns,
// regardless of which store the identity came from. Verified and
// RejectionReason are only set for employers.
type AuthUser struct {
	UserID          string
	Name            string
	PasswordHash    *string
	Blocked         bool
	Verified        *bool
	RejectionReason *string
}

type RefreshToken struct {
	ID        int64
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
