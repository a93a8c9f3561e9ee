package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"painel-conto/internal/cache"
	"painel-conto/internal/metrics"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
	"painel-conto/internal/timeutil"
	"painel-conto/internal/tracking"
)

type LeadService struct {
	Repo    *repositories.LeadRepository
	Hub     *realtime.Hub
	listTTL time.Duration
}

func NewLeadService(repo *repositories.LeadRepository, hub *realtime.Hub, listTTL time.Duration) *LeadService {
	return &LeadService{Repo: repo, Hub: hub, listTTL: listTTL}
}

// List returns the space's leads newest first, served from cache when fresh.
func (s *LeadService) List(ctx context.Context, spaceID string) ([]*models.Lead, error) {
	key := cache.LeadsKey(spaceID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var leads []*models.Lead
		if err := json.Unmarshal(data, &leads); err == nil {
			return leads, nil
		}
	}

	leads, err := s.Repo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(leads); err == nil {
		cache.SetCached(ctx, key, data, s.listTTL)
	}
	return leads, nil
}

func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return s.Repo.Get(ctx, id)
}

func (s *LeadService) Create(ctx context.Context, spaceID string, userID uuid.UUID, req *models.CreateLeadRequest) (*models.Lead, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	stage := req.Stage
	if stage == "" {
		stage = models.StageNew
	}
	if !models.ValidStage(stage) {
		return nil, errors.New("unknown pipeline stage")
	}
	temperature := req.Temperature
	if temperature == "" {
		temperature = models.TemperatureWarm
	}

	lead := &models.Lead{
		SpaceID:        spaceID,
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Value:          req.Value,
		Temperature:    temperature,
		Stage:          stage,
		Source:         req.Source,
		Notes:          req.Notes,
		StageChangedAt: timeutil.Now(),
	}
	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	cache.InvalidateLeadCaches(ctx, spaceID)
	s.Hub.Publish("leads", realtime.EventInsert, lead)
	return lead, nil
}

func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateLeadRequest) (*models.Lead, error) {
	lead, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Name = req.Name
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Company = req.Company
	lead.Value = req.Value
	if req.Temperature != "" {
		lead.Temperature = req.Temperature
	}
	lead.Source = req.Source
	lead.Notes = req.Notes

	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	cache.InvalidateLeadCaches(ctx, lead.SpaceID)
	s.Hub.Publish("leads", realtime.EventUpdate, lead)
	return lead, nil
}

// MoveToStage transitions a lead through the pipeline and stamps the moment
// of the change. The stamp drives the proposal follow-up automation.
func (s *LeadService) MoveToStage(ctx context.Context, id uuid.UUID, stage models.LeadStage) (*models.Lead, error) {
	if !models.ValidStage(stage) {
		return nil, errors.New("unknown pipeline stage")
	}

	lead, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Stage == stage {
		return lead, nil
	}

	now := timeutil.Now()
	if err := s.Repo.UpdateStage(ctx, id, stage, now); err != nil {
		return nil, err
	}
	lead.Stage = stage
	lead.StageChangedAt = now

	metrics.LeadStageTransitions.WithLabelValues(string(stage), "false").Inc()
	cache.InvalidateLeadCaches(ctx, lead.SpaceID)
	s.Hub.Publish("leads", realtime.EventUpdate, lead)
	return lead, nil
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	lead, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateLeadCaches(ctx, lead.SpaceID)
	s.Hub.Publish("leads", realtime.EventDelete, lead)
	return nil
}

// Stats summarizes the funnel for a space.
func (s *LeadService) Stats(ctx context.Context, spaceID string) (models.PipelineStats, error) {
	leads, err := s.List(ctx, spaceID)
	if err != nil {
		return models.PipelineStats{}, err
	}
	return tracking.PipelineStatsFor(leads), nil
}
