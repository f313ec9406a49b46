package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

// CredentialRepository defines persistence access for login credentials
// and their role assignments, owned by auth-service.
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, userID int64) error
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertCred = `
        INSERT INTO credentials (user_id, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	if err := tx.QueryRow(ctx, insertCred,
		cred.UserID,
		cred.Email,
		cred.PasswordHash,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt); err != nil {
		return err
	}

	const insertRole = `
        INSERT INTO credential_roles (user_id, role_id)
        SELECT $1, id FROM roles WHERE name = $2`

	for _, role := range cred.Roles {
		if _, err := tx.Exec(ctx, insertRole, cred.UserID, string(role)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	const query = `
        SELECT user_id, email, password_hash, created_at, updated_at
        FROM credentials WHERE email=$1`

	var cred domain.Credential
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.UserID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		return nil, err
	}

	const roleQuery = `
        SELECT r.name FROM roles r
        JOIN credential_roles cr ON cr.role_id = r.id
        WHERE cr.user_id = $1
        ORDER BY r.id`

	rows, err := r.pool.Query(ctx, roleQuery, cred.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cred.Roles = append(cred.Roles, domain.Role(name))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM credentials WHERE email=$1`

	var one int
	err := r.pool.QueryRow(ctx, query, email).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *credentialRepository) Delete(ctx context.Context, userID int64) error {
	const query = `DELETE FROM credentials WHERE user_id=$1`

	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
