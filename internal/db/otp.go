package db

import (
	"context"
	"time"

	"github.com/rahnacm97/Talentra/internal/model"
)

const otpColumns = `id, email, otp, purpose, is_used, expires_at, token, full_name, phone_number, password_hash, user_type, created_at`

func scanOtp(row interface{ Scan(dest ...any) error }) (*model.OtpRecord, error) {
	var r model.OtpRecord
	err := row.Scan(
		&r.ID,
		&r.Email,
		&r.Otp,
		&r.Purpose,
		&r.IsUsed,
		&r.ExpiresAt,
		&r.Token,
		&r.FullName,
		&r.PhoneNumber,
		&r.PasswordHash,
		&r.UserType,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *Postgres) CreateOtp(ctx context.Context, r *model.OtpRecord) (*model.OtpRecord, error) {
	query := `
		INSERT INTO otps (email, otp, purpose, is_used, expires_at, token, full_name, phone_number, password_hash, user_type, created_at)
		VALUES ($1, $2, $3, FALSE, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING ` + otpColumns
	row := db.Pool.QueryRow(ctx, query, r.Email, r.Otp, r.Purpose, r.ExpiresAt, r.Token, r.FullName, r.PhoneNumber, r.PasswordHash, r.UserType)
	return scanOtp(row)
}

// FindUnusedOtp looks up the record matching (email, otp, purpose) that has
// not been consumed yet.
func (db *Postgres) FindUnusedOtp(ctx context.Context, email, otp string, purpose model.OtpPurpose) (*model.OtpRecord, error) {
	query := `
		SELECT ` + otpColumns + `
		FROM otps
		WHERE email = $1 AND otp = $2 AND purpose = $3 AND NOT is_used
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanOtp(db.Pool.QueryRow(ctx, query, email, otp, purpose))
}

// FindLatestOtp returns the most recent record for (email, purpose). When
// used is non-nil the lookup is restricted to that consumption state.
func (db *Postgres) FindLatestOtp(ctx context.Context, email string, purpose model.OtpPurpose, used *bool) (*model.OtpRecord, error) {
	query := `
		SELECT ` + otpColumns + `
		FROM otps
		WHERE email = $1 AND purpose = $2 AND ($3::boolean IS NULL OR is_used = $3)
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanOtp(db.Pool.QueryRow(ctx, query, email, purpose, used))
}

// RefreshOtp replaces the code, artifact token and expiry on an existing
// record, keeping the staged payload intact. Used by resend.
func (db *Postgres) RefreshOtp(ctx context.Context, id int64, otp, token string, expiresAt time.Time) (*model.OtpRecord, error) {
	query := `
		UPDATE otps
		SET otp = $2, token = $3, expires_at = $4, is_used = FALSE
		WHERE id = $1
		RETURNING ` + otpColumns
	return scanOtp(db.Pool.QueryRow(ctx, query, id, otp, token, expiresAt))
}

// ReplaceOtp overwrites an existing record with a fresh code, artifact token,
// expiry and staged payload. Used when a new signup request supersedes an
// expired pending record.
func (db *Postgres) ReplaceOtp(ctx context.Context, id int64, r *model.OtpRecord) (*model.OtpRecord, error) {
	query := `
		UPDATE otps
		SET otp = $2, token = $3, expires_at = $4, is_used = FALSE,
			full_name = $5, phone_number = $6, password_hash = $7, user_type = $8
		WHERE id = $1
		RETURNING ` + otpColumns
	row := db.Pool.QueryRow(ctx, query, id, r.Otp, r.Token, r.ExpiresAt, r.FullName, r.PhoneNumber, r.PasswordHash, r.UserType)
	return scanOtp(row)
}

func (db *Postgres) MarkOtpUsed(ctx context.Context, id int64) error {
	query := `UPDATE otps SET is_used = TRUE WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, id)
	return err
}

func (db *Postgres) DeleteOtp(ctx context.Context, id int64) error {
	query := `DELETE FROM otps WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, id)
	return err
}
