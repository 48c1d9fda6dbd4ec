package db

import (
	"context"

	"github.com/rahnacm97/Talentra/internal/model"
)

const employerColumns = `id, email, name, password_hash, google_id, phone_number, blocked, verified, rejection_reason, company_description, website, created_at, updated_at`

func scanEmployer(row interface{ Scan(dest ...any) error }) (*model.Employer, error) {
	var e model.Employer
	err := row.Scan(
		&e.ID,
		&e.Email,
		&e.Name,
		&e.PasswordHash,
		&e.GoogleID,
		&e.PhoneNumber,
		&e.Blocked,
		&e.Verified,
		&e.RejectionReason,
		&e.CompanyDescription,
		&e.Website,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (db *Postgres) CreateEmployer(ctx context.Context, e *model.Employer) (*model.Employer, error) {
	query := `
		INSERT INTO employers (id, email, name, password_hash, google_id, phone_number, blocked, verified, company_description, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + employerColumns
	row := db.Pool.QueryRow(ctx, query, e.ID, e.Email, e.Name, e.PasswordHash, e.GoogleID, e.PhoneNumber, e.Blocked, e.Verified, e.CompanyDescription, e.Website)
	return scanEmployer(row)
}

func (db *Postgres) GetEmployerByEmail(ctx context.Context, email string) (*model.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE email = $1`
	return scanEmployer(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetEmployerByID(ctx context.Context, id string) (*model.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE id = $1`
	return scanEmployer(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) UpdateEmployerPassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE employers
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, id, passwordHash)
	return err
}

func (db *Postgres) UpdateEmployerGoogleID(ctx context.Context, id, googleID string) error {
	query := `
		UPDATE employers
		SET google_id = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, id, googleID)
	return err
}

func (db *Postgres) SetEmployerBlocked(ctx context.Context, id string, blocked bool) (*model.Employer, error) {
	query := `
		UPDATE employers
		SET blocked = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employerColumns
	return scanEmployer(db.Pool.QueryRow(ctx, query, id, blocked))
}

// VerifyEmployer moves the employer to the verified state and clears any
// previous rejection reason.
func (db *Postgres) VerifyEmployer(ctx context.Context, id string) (*model.Employer, error) {
	query := `
		UPDATE employers
		SET verified = TRUE, rejection_reason = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employerColumns
	return scanEmployer(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) RejectEmployer(ctx context.Context, id, reason string) (*model.Employer, error) {
	query := `
		UPDATE employers
		SET verified = FALSE, rejection_reason = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employerColumns
	return scanEmployer(db.Pool.QueryRow(ctx, query, id, reason))
}

// UpdateEmployerProfile applies a profile resubmission. The trust state
// returns to pending: verified is reset and the rejection reason cleared.
func (db *Postgres) UpdateEmployerProfile(ctx context.Context, id, name, phoneNumber, companyDescription, website string) (*model.Employer, error) {
	query := `
		UPDATE employers
		SET name = $2, phone_number = $3, company_description = $4, website = $5,
			verified = FALSE, rejection_reason = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employerColumns
	return scanEmployer(db.Pool.QueryRow(ctx, query, id, name, phoneNumber, companyDescription, website))
}
