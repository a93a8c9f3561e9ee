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

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = `
	id, space_id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(company, ''), COALESCE(monthly_value, 0), status, start_date, created_at
`

func scanClient(row pgx.Row) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(
		&client.ID,
		&client.SpaceID,
		&client.UserID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Company,
		&client.MonthlyValue,
		&client.Status,
		&client.StartDate,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, space_id, user_id, name, email, phone, company, monthly_value, status, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	client.ID = uuid.New()
	err := r.DB.QueryRow(ctx, query,
		client.ID,
		client.SpaceID,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.MonthlyValue,
		client.Status,
		client.StartDate,
	).Scan(&client.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	client.NPSHistory = []*models.NPSRecord{}
	return nil
}

func (r *ClientRepository) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	history, err := r.listNPS(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	client.NPSHistory = history[id]
	if client.NPSHistory == nil {
		client.NPSHistory = []*models.NPSRecord{}
	}
	return client, nil
}

// ListBySpace returns the space's clients newest first, each with its NPS
// history attached.
func (r *ClientRepository) ListBySpace(ctx context.Context, spaceID string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE space_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	var ids []uuid.UUID
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
		ids = append(ids, client.ID)
	}

	if len(clients) == 0 {
		return clients, nil
	}

	// Second query for all histories, grouped in memory - avoids N+1
	history, err := r.listNPS(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, client := range clients {
		client.NPSHistory = history[client.ID]
		if client.NPSHistory == nil {
			client.NPSHistory = []*models.NPSRecord{}
		}
	}
	return clients, nil
}

func (r *ClientRepository) listNPS(ctx context.Context, clientIDs []uuid.UUID) (map[uuid.UUID][]*models.NPSRecord, error) {
	query := `
		SELECT id, client_id, month, year, score, COALESCE(comment, ''), recorded_at
		FROM nps_records
		WHERE client_id = ANY($1)
		ORDER BY year ASC, month ASC
	`
	rows, err := r.DB.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(map[uuid.UUID][]*models.NPSRecord)
	for rows.Next() {
		record := &models.NPSRecord{}
		err := rows.Scan(
			&record.ID,
			&record.ClientID,
			&record.Month,
			&record.Year,
			&record.Score,
			&record.Comment,
			&record.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		history[record.ClientID] = append(history[record.ClientID], record)
	}
	return history, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5,
		    monthly_value = $6, status = $7, start_date = $8
		WHERE id = $1
	`
	result, err := r.DB.Exec(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.MonthlyValue,
		client.Status,
		client.StartDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpsertNPSRecord saves a client's score for a month. The compound unique
// key (client_id, month, year) is resolved atomically with ON CONFLICT, so
// a second submission for the same month overwrites instead of duplicating.
func (r *ClientRepository) UpsertNPSRecord(ctx context.Context, clientID uuid.UUID, record *models.NPSRecord) error {
	query := `
		INSERT INTO nps_records (id, client_id, month, year, score, comment, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (client_id, month, year) DO UPDATE
		SET score = EXCLUDED.score,
		    comment = EXCLUDED.comment,
		    recorded_at = EXCLUDED.recorded_at
		RETURNING id
	`
	record.ClientID = clientID
	record.RecordedAt = timeutil.Now()
	err := r.DB.QueryRow(ctx, query,
		uuid.New(),
		clientID,
		record.Month,
		record.Year,
		record.Score,
		record.Comment,
		record.RecordedAt,
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("failed to save nps record: %w", err)
	}
	return nil
}

func (r *ClientRepository) DeleteNPSRecord(ctx context.Context, recordID uuid.UUID) error {
	result, err := r.DB.Exec(ctx, "DELETE FROM nps_records WHERE id = $1", recordID)
	if err != nil {
		return fmt.Errorf("failed to delete nps record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
