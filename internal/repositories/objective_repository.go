package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"painel-conto/internal/models"
	"painel-conto/internal/timeutil"
)

type ObjectiveRepository struct {
	DB *pgxpool.Pool
}

func NewObjectiveRepository(db *pgxpool.Pool) *ObjectiveRepository {
	return &ObjectiveRepository{DB: db}
}

const objectiveColumns = `
	id, space_id, user_id, name, COALESCE(description, ''), value_type,
	target_value, current_value, deadline, status, is_commercial,
	COALESCE(data_sources, '{}'), created_at
`

func scanObjective(row pgx.Row) (*models.Objective, error) {
	o := &models.Objective{}
	err := row.Scan(
		&o.ID,
		&o.SpaceID,
		&o.UserID,
		&o.Name,
		&o.Description,
		&o.ValueType,
		&o.TargetValue,
		&o.CurrentValue,
		&o.Deadline,
		&o.Status,
		&o.IsCommercial,
		&o.DataSources,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ObjectiveRepository) Create(ctx context.Context, o *models.Objective) error {
	query := `
		INSERT INTO objectives (id, space_id, user_id, name, description, value_type, target_value, current_value, deadline, status, is_commercial, data_sources)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	o.ID = uuid.New()
	err := r.DB.QueryRow(ctx, query,
		o.ID,
		o.SpaceID,
		o.UserID,
		o.Name,
		o.Description,
		o.ValueType,
		o.TargetValue,
		o.CurrentValue,
		o.Deadline,
		o.Status,
		o.IsCommercial,
		o.DataSources,
	).Scan(&o.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}
	o.ProgressLogs = []*models.ProgressLog{}
	return nil
}

func (r *ObjectiveRepository) Get(ctx context.Context, id uuid.UUID) (*models.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE id = $1`
	o, err := scanObjective(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	logs, err := r.listLogs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	o.ProgressLogs = logs[id]
	if o.ProgressLogs == nil {
		o.ProgressLogs = []*models.ProgressLog{}
	}
	return o, nil
}

// ListBySpace returns the space's objectives newest first, each with its
// progress logs attached. The stored status column comes back as-is; the
// service recomputes it before anything reads it.
func (r *ObjectiveRepository) ListBySpace(ctx context.Context, spaceID string) ([]*models.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE space_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objectives []*models.Objective
	var ids []uuid.UUID
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
		ids = append(ids, o.ID)
	}

	if len(objectives) == 0 {
		return objectives, nil
	}

	logs, err := r.listLogs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range objectives {
		o.ProgressLogs = logs[o.ID]
		if o.ProgressLogs == nil {
			o.ProgressLogs = []*models.ProgressLog{}
		}
	}
	return objectives, nil
}

func (r *ObjectiveRepository) listLogs(ctx context.Context, objectiveIDs []uuid.UUID) (map[uuid.UUID][]*models.ProgressLog, error) {
	query := `
		SELECT id, objective_id, month, year, value, COALESCE(description, ''), recorded_at
		FROM progress_logs
		WHERE objective_id = ANY($1)
		ORDER BY year ASC, month ASC
	`
	rows, err := r.DB.Query(ctx, query, objectiveIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make(map[uuid.UUID][]*models.ProgressLog)
	for rows.Next() {
		entry := &models.ProgressLog{}
		err := rows.Scan(
			&entry.ID,
			&entry.ObjectiveID,
			&entry.Month,
			&entry.Year,
			&entry.Value,
			&entry.Description,
			&entry.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		logs[entry.ObjectiveID] = append(logs[entry.ObjectiveID], entry)
	}
	return logs, nil
}

func (r *ObjectiveRepository) Update(ctx context.Context, o *models.Objective) error {
	query := `
		UPDATE objectives
		SET name = $2, description = $3, value_type = $4, target_value = $5,
		    deadline = $6, is_commercial = $7, data_sources = $8
		WHERE id = $1
	`
	result, err := r.DB.Exec(ctx, query,
		o.ID,
		o.Name,
		o.Description,
		o.ValueType,
		o.TargetValue,
		o.Deadline,
		o.IsCommercial,
		o.DataSources,
	)
	if err != nil {
		return fmt.Errorf("failed to update objective: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateDerived writes the recomputed current value and status back to the
// stored row. Used only by the background reconciliation - the stored values
// are a convenience copy, never the source of truth.
func (r *ObjectiveRepository) UpdateDerived(ctx context.Context, id uuid.UUID, currentValue float64, status models.ObjectiveStatus) error {
	_, err := r.DB.Exec(ctx,
		"UPDATE objectives SET current_value = $2, status = $3 WHERE id = $1",
		id, currentValue, status,
	)
	return err
}

// Delete removes the objective; progress_logs rows go with it via the
// ON DELETE CASCADE on the foreign key.
func (r *ObjectiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.Exec(ctx, "DELETE FROM objectives WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpsertProgressLog saves a manual monthly entry. The compound unique key
// (objective_id, month, year) is resolved atomically with ON CONFLICT:
// submitting the same month twice overwrites the existing log, preserving
// one row per calendar month.
func (r *ObjectiveRepository) UpsertProgressLog(ctx context.Context, objectiveID uuid.UUID, entry *models.ProgressLog) error {
	query := `
		INSERT INTO progress_logs (id, objective_id, month, year, value, description, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (objective_id, month, year) DO UPDATE
		SET value = EXCLUDED.value,
		    description = EXCLUDED.description,
		    recorded_at = EXCLUDED.recorded_at
		RETURNING id
	`
	entry.ObjectiveID = objectiveID
	entry.RecordedAt = timeutil.Now()
	err := r.DB.QueryRow(ctx, query,
		uuid.New(),
		objectiveID,
		entry.Month,
		entry.Year,
		entry.Value,
		entry.Description,
		entry.RecordedAt,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("failed to save progress log: %w", err)
	}
	return nil
}

// DeleteProgressLog removes the log for one calendar month by compound key.
func (r *ObjectiveRepository) DeleteProgressLog(ctx context.Context, objectiveID uuid.UUID, month, year int) error {
	result, err := r.DB.Exec(ctx,
		"DELETE FROM progress_logs WHERE objective_id = $1 AND month = $2 AND year = $3",
		objectiveID, month, year,
	)
	if err != nil {
		return fmt.Errorf("failed to delete progress log: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LatestLogValue returns the value of the most recent manual log for a
// non-commercial objective, or 0 when none exists.
func (r *ObjectiveRepository) LatestLogValue(ctx context.Context, objectiveID uuid.UUID) (float64, error) {
	var value float64
	query := `
		SELECT value FROM progress_logs
		WHERE objective_id = $1
		ORDER BY year DESC, month DESC
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, query, objectiveID).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}
