package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"painel-conto/internal/models"
)

type LeadRepository struct {
	DB *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, space_id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(company, ''), COALESCE(value, 0), temperature, stage,
	COALESCE(source, ''), COALESCE(notes, ''), stage_changed_at, created_at, updated_at
`

func scanLead(row pgx.Row) (*models.Lead, error) {
	lead := &models.Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.SpaceID,
		&lead.UserID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Value,
		&lead.Temperature,
		&lead.Stage,
		&lead.Source,
		&lead.Notes,
		&lead.StageChangedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (id, space_id, user_id, name, email, phone, company, value, temperature, stage, source, notes, stage_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`
	lead.ID = uuid.New()
	err := r.DB.QueryRow(ctx, query,
		lead.ID,
		lead.SpaceID,
		lead.UserID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Value,
		lead.Temperature,
		lead.Stage,
		lead.Source,
		lead.Notes,
		lead.StageChangedAt,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(r.DB.QueryRow(ctx, query, id))
}

// ListBySpace returns the space's leads, newest first.
func (r *LeadRepository) ListBySpace(ctx context.Context, spaceID string) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE space_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// ListByStage returns all leads in the given stage across every space. Used
// by the stage automation, which runs space-agnostic.
func (r *LeadRepository) ListByStage(ctx context.Context, stage models.LeadStage) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE stage = $1 ORDER BY stage_changed_at ASC`
	rows, err := r.DB.Query(ctx, query, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, company = $5, value = $6,
		    temperature = $7, source = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Value,
		lead.Temperature,
		lead.Source,
		lead.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStage moves a lead to a new stage and refreshes stage_changed_at,
// which every transition (manual or automatic) must do.
func (r *LeadRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage models.LeadStage, changedAt time.Time) error {
	query := `
		UPDATE leads
		SET stage = $2, stage_changed_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.Exec(ctx, query, id, stage, changedAt)
	if err != nil {
		return fmt.Errorf("failed to move lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.Exec(ctx, "DELETE FROM leads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
