package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PermissionRepository reads and writes the user_roles and user_permissions
// tables. These tables are the single source of truth for authorization:
// role checks and space allow-lists are always answered from here.
type PermissionRepository struct {
	DB *pgxpool.Pool
}

func NewPermissionRepository(db *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{DB: db}
}

// GetRole returns the user's role, or "" when no role row exists.
func (r *PermissionRepository) GetRole(ctx context.Context, userID uuid.UUID) (string, error) {
	var role string
	err := r.DB.QueryRow(ctx, "SELECT role FROM user_roles WHERE user_id = $1", userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return role, nil
}

// SetRole inserts or replaces the user's single role row.
func (r *PermissionRepository) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		INSERT INTO user_roles (id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := r.DB.Exec(ctx, query, uuid.New(), userID, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

// GetPermissions returns the user's allowed modules and spaces. A user
// without a permission row has empty allow-lists.
func (r *PermissionRepository) GetPermissions(ctx context.Context, userID uuid.UUID) (modules []string, spaces []string, err error) {
	query := `
		SELECT allowed_modules, allowed_spaces
		FROM user_permissions
		WHERE user_id = $1
	`
	err = r.DB.QueryRow(ctx, query, userID).Scan(&modules, &spaces)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return modules, spaces, nil
}

// SetPermissions inserts or replaces the user's permission row.
func (r *PermissionRepository) SetPermissions(ctx context.Context, userID uuid.UUID, modules, spaces []string) error {
	query := `
		INSERT INTO user_permissions (id, user_id, allowed_modules, allowed_spaces)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET allowed_modules = EXCLUDED.allowed_modules,
		    allowed_spaces = EXCLUDED.allowed_spaces,
		    updated_at = NOW()
	`
	_, err := r.DB.Exec(ctx, query, uuid.New(), userID, modules, spaces)
	if err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	return nil
}
