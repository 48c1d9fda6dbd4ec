package db

import (
	"context"

	"github.com/rahnacm97/Talentra/internal/model"
)

func (db *Postgres) CreateAdmin(ctx context.Context, a *model.Admin) (*model.Admin, error) {
	query := `
		INSERT INTO admins (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, email, name, password_hash, created_at
	`
	var out model.Admin
	err := db.Pool.QueryRow(ctx, query, a.ID, a.Email, a.Name, a.PasswordHash).Scan(
		&out.ID,
		&out.Email,
		&out.Name,
		&out.PasswordHash,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (db *Postgres) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM admins
		WHERE email = $1
	`
	var a model.Admin
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
