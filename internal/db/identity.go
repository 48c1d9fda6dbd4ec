package db

import (
	"context"

	"github.com/rahnacm97/Talentra/internal/model"
)

func (db *Postgres) CreateCandidate(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	query := `
		INSERT INTO candidates (id, email, name, password_hash, google_id, phone_number, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, email, name, password_hash, google_id, phone_number, blocked, created_at, updated_at
	`
	var out model.Candidate
	err := db.Pool.QueryRow(ctx, query, c.ID, c.Email, c.Name, c.PasswordHash, c.GoogleID, c.PhoneNumber, c.Blocked).Scan(
		&out.ID,
		&out.Email,
		&out.Name,
		&out.PasswordHash,
		&out.GoogleID,
		&out.PhoneNumber,
		&out.Blocked,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (db *Postgres) GetCandidateByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	query := `
		SELECT id, email, name, password_hash, google_id, phone_number, blocked, created_at, updated_at
		FROM candidates
		WHERE email = $1
	`
	var c model.Candidate
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.PasswordHash,
		&c.GoogleID,
		&c.PhoneNumber,
		&c.Blocked,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *Postgres) UpdateCandidatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE candidates
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, id, passwordHash)
	return err
}

func (db *Postgres) UpdateCandidateGoogleID(ctx context.Context, id, googleID string) error {
	query := `
		UPDATE candidates
		SET google_id = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, id, googleID)
	return err
}

func (db *Postgres) SetCandidateBlocked(ctx context.Context, id string, blocked bool) (*model.Candidate, error) {
	query := `
		UPDATE candidates
		SET blocked = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, name, password_hash, google_id, phone_number, blocked, created_at, updated_at
	`
	var c model.Candidate
	err := db.Pool.QueryRow(ctx, query, id, blocked).Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.PasswordHash,
		&c.GoogleID,
		&c.PhoneNumber,
		&c.Blocked,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
