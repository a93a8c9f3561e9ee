package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"painel-conto/internal/models"
)

type SpaceRepository struct {
	DB *pgxpool.Pool
}

func NewSpaceRepository(db *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{DB: db}
}

func (r *SpaceRepository) Create(ctx context.Context, space *models.Space) error {
	query := `
		INSERT INTO spaces (id, label, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.DB.QueryRow(ctx, query, space.ID, space.Label, space.Description, space.Color).Scan(&space.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

func (r *SpaceRepository) Get(ctx context.Context, id string) (*models.Space, error) {
	query := `
		SELECT id, label, COALESCE(description, ''), COALESCE(color, 'bg-primary'), created_at
		FROM spaces
		WHERE id = $1
	`
	space := &models.Space{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&space.ID,
		&space.Label,
		&space.Description,
		&space.Color,
		&space.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return space, nil
}

func (r *SpaceRepository) List(ctx context.Context) ([]*models.Space, error) {
	query := `
		SELECT id, label, COALESCE(description, ''), COALESCE(color, 'bg-primary'), created_at
		FROM spaces
		ORDER BY label ASC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []*models.Space
	for rows.Next() {
		space := &models.Space{}
		err := rows.Scan(
			&space.ID,
			&space.Label,
			&space.Description,
			&space.Color,
			&space.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}

	return spaces, nil
}

func (r *SpaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM spaces").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Exists reports whether a space with the given id is already registered.
func (r *SpaceRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.Exec(ctx, "DELETE FROM spaces WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
