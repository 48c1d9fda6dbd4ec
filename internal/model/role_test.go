package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "candidate", "employer"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		require.Equal(t, s, role.String())
	}

	_, err := ParseRole("Admin")
	require.Error(t, err)
	_, err = ParseRole("")
	require.Error(t, err)
}

func TestParseOtpPurpose(t *testing.T) {
	for _, s := range []string{"signup", "forgot-password"} {
		purpose, err := ParseOtpPurpose(s)
		require.NoError(t, err)
		require.Equal(t, OtpPurpose(s), purpose)
	}

	_, err := ParseOtpPurpose("login")
	require.Error(t, err)
}

func TestOtpRecordExpired(t *testing.T) {
	now := time.Now()
	record := &OtpRecord{ExpiresAt: now.Add(60 * time.Second)}

	require.False(t, record.Expired(now))
	require.False(t, record.Expired(now.Add(59*time.Second)))
	require.True(t, record.Expired(now.Add(61*time.Second)))
}
