package model

import "fmt"

// Role identifies which user store an identity lives in. The set is closed:
// every dispatch on Role switches over exactly these three values.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// LoginProbeOrder is the fixed order login resolves an email across roles.
// Admin is checked first; first match wins.
var LoginProbeOrder = []Role{RoleAdmin, RoleCandidate, RoleEmployer}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCandidate, RoleEmployer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

func (r Role) String() string {
	return string(r)
}
