package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"painel-conto/internal/cache"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
	"painel-conto/internal/tracking"
)

type ClientService struct {
	Repo    *repositories.ClientRepository
	Hub     *realtime.Hub
	listTTL time.Duration
}

func NewClientService(repo *repositories.ClientRepository, hub *realtime.Hub, listTTL time.Duration) *ClientService {
	return &ClientService{Repo: repo, Hub: hub, listTTL: listTTL}
}

// List returns the space's clients with NPS history attached, served from
// cache when fresh.
func (s *ClientService) List(ctx context.Context, spaceID string) ([]*models.Client, error) {
	key := cache.ClientsKey(spaceID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var clients []*models.Client
		if err := json.Unmarshal(data, &clients); err == nil {
			return clients, nil
		}
	}

	clients, err := s.Repo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(clients); err == nil {
		cache.SetCached(ctx, key, data, s.listTTL)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, spaceID string, userID uuid.UUID, req *models.CreateClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	status := req.Status
	if status == "" {
		status = models.ClientActive
	}
	if !models.ValidClientStatus(status) {
		return nil, errors.New("unknown client status")
	}

	client := &models.Client{
		SpaceID:      spaceID,
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		MonthlyValue: req.MonthlyValue,
		Status:       status,
		StartDate:    req.StartDate,
	}
	if err := s.Repo.Create(ctx, client); err != nil {
		return nil, err
	}

	cache.InvalidateClientCaches(ctx, spaceID)
	s.Hub.Publish("clients", realtime.EventInsert, client)
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateClientRequest) (*models.Client, error) {
	if !models.ValidClientStatus(req.Status) {
		return nil, errors.New("unknown client status")
	}

	client, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Company = req.Company
	client.MonthlyValue = req.MonthlyValue
	client.Status = req.Status
	client.StartDate = req.StartDate

	if err := s.Repo.Update(ctx, client); err != nil {
		return nil, err
	}

	cache.InvalidateClientCaches(ctx, client.SpaceID)
	s.Hub.Publish("clients", realtime.EventUpdate, client)
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateClientCaches(ctx, client.SpaceID)
	s.Hub.Publish("clients", realtime.EventDelete, client)
	return nil
}

// SaveNPS records a monthly satisfaction score. Saving the same month twice
// overwrites the earlier record.
func (s *ClientService) SaveNPS(ctx context.Context, clientID uuid.UUID, req *models.SaveNPSRequest) (*models.NPSRecord, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, errors.New("month must be between 1 and 12")
	}
	if req.Score < 0 || req.Score > 10 {
		return nil, errors.New("score must be between 0 and 10")
	}

	client, err := s.Repo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	record := &models.NPSRecord{
		Month:   req.Month,
		Year:    req.Year,
		Score:   req.Score,
		Comment: req.Comment,
	}
	if err := s.Repo.UpsertNPSRecord(ctx, clientID, record); err != nil {
		return nil, err
	}

	cache.InvalidateClientCaches(ctx, client.SpaceID)
	s.Hub.Publish("nps_records", realtime.EventInsert, record)
	return record, nil
}

func (s *ClientService) DeleteNPS(ctx context.Context, clientID, recordID uuid.UUID) error {
	client, err := s.Repo.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteNPSRecord(ctx, recordID); err != nil {
		return err
	}

	cache.InvalidateClientCaches(ctx, client.SpaceID)
	s.Hub.Publish("nps_records", realtime.EventDelete, map[string]interface{}{"id": recordID})
	return nil
}

// Stats summarizes the client base for a space.
func (s *ClientService) Stats(ctx context.Context, spaceID string) (models.ClientStats, error) {
	clients, err := s.List(ctx, spaceID)
	if err != nil {
		return models.ClientStats{}, err
	}
	return tracking.ClientStatsFor(clients), nil
}
