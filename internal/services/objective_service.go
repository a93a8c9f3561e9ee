package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"painel-conto/internal/cache"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
	"painel-conto/internal/timeutil"
	"painel-conto/internal/tracking"
)

type ObjectiveService struct {
	Repo       *repositories.ObjectiveRepository
	LeadRepo   *repositories.LeadRepository
	ClientRepo *repositories.ClientRepository
	Hub        *realtime.Hub
	listTTL    time.Duration
}

func NewObjectiveService(repo *repositories.ObjectiveRepository, leadRepo *repositories.LeadRepository, clientRepo *repositories.ClientRepository, hub *realtime.Hub, listTTL time.Duration) *ObjectiveService {
	return &ObjectiveService{
		Repo:       repo,
		LeadRepo:   leadRepo,
		ClientRepo: clientRepo,
		Hub:        hub,
		listTTL:    listTTL,
	}
}

// List returns the space's objectives with current value and status
// recomputed from live data. When a recomputed value drifts from the stored
// copy, the stored row is reconciled in the background; a reconciliation
// failure is logged and never fails the read.
func (s *ObjectiveService) List(ctx context.Context, spaceID string) ([]*models.Objective, error) {
	key := cache.ObjectivesKey(spaceID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var objectives []*models.Objective
		if err := json.Unmarshal(data, &objectives); err == nil {
			return objectives, nil
		}
	}

	objectives, err := s.Repo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if len(objectives) == 0 {
		return objectives, nil
	}

	leads, err := s.LeadRepo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	clients, err := s.ClientRepo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	for _, o := range objectives {
		s.refresh(o, leads, clients, now)
	}

	if data, err := json.Marshal(objectives); err == nil {
		cache.SetCached(ctx, key, data, s.listTTL)
	}
	return objectives, nil
}

// refresh recomputes an objective's derived fields in place and kicks off a
// background write when the stored copy has drifted.
func (s *ObjectiveService) refresh(o *models.Objective, leads []*models.Lead, clients []*models.Client, now time.Time) {
	current := o.CurrentValue
	if o.IsCommercial {
		current = tracking.AggregateCommercialValue(o.DataSources, o.ValueType, leads, clients)
	} else if n := len(o.ProgressLogs); n > 0 {
		// Logs come back ordered by year then month ascending
		current = o.ProgressLogs[n-1].Value
	}
	status := tracking.ClassifyStatus(current, o.TargetValue, o.Deadline, now)

	if current != o.CurrentValue || status != o.Status {
		s.reconcile(o.ID, current, status)
	}
	o.CurrentValue = current
	o.Status = status
}

// reconcile writes recomputed derived fields back to the stored row without
// blocking the caller. The stored copy is only a convenience; losing one
// write is harmless because the next read recomputes again.
func (s *ObjectiveService) reconcile(id uuid.UUID, current float64, status models.ObjectiveStatus) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Repo.UpdateDerived(ctx, id, current, status); err != nil {
			log.Printf("[Objectives] Reconcile %s failed: %v", id, err)
		}
	}()
}

func (s *ObjectiveService) Create(ctx context.Context, spaceID string, userID uuid.UUID, req *models.CreateObjectiveRequest) (*models.Objective, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if !models.ValidValueType(req.ValueType) {
		return nil, errors.New("unknown value type")
	}

	o := &models.Objective{
		SpaceID:      spaceID,
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		ValueType:    req.ValueType,
		TargetValue:  req.TargetValue,
		Deadline:     req.Deadline,
		IsCommercial: req.IsCommercial,
		DataSources:  req.DataSources,
	}
	if o.DataSources == nil {
		o.DataSources = []string{}
	}

	// Commercial objectives open with the current aggregate instead of zero
	if o.IsCommercial {
		leads, err := s.LeadRepo.ListBySpace(ctx, spaceID)
		if err != nil {
			return nil, err
		}
		clients, err := s.ClientRepo.ListBySpace(ctx, spaceID)
		if err != nil {
			return nil, err
		}
		o.CurrentValue = tracking.AggregateCommercialValue(o.DataSources, o.ValueType, leads, clients)
	}
	o.Status = tracking.ClassifyStatus(o.CurrentValue, o.TargetValue, o.Deadline, timeutil.Now())

	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}

	cache.InvalidateObjectiveCaches(ctx, spaceID)
	s.Hub.Publish("objectives", realtime.EventInsert, o)
	return o, nil
}

func (s *ObjectiveService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateObjectiveRequest) (*models.Objective, error) {
	if !models.ValidValueType(req.ValueType) {
		return nil, errors.New("unknown value type")
	}

	o, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Name = req.Name
	o.Description = req.Description
	o.ValueType = req.ValueType
	o.TargetValue = req.TargetValue
	o.Deadline = req.Deadline
	o.IsCommercial = req.IsCommercial
	o.DataSources = req.DataSources
	if o.DataSources == nil {
		o.DataSources = []string{}
	}

	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, err
	}

	cache.InvalidateObjectiveCaches(ctx, o.SpaceID)
	s.Hub.Publish("objectives", realtime.EventUpdate, o)
	return o, nil
}

func (s *ObjectiveService) Delete(ctx context.Context, id uuid.UUID) error {
	o, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateObjectiveCaches(ctx, o.SpaceID)
	s.Hub.Publish("objectives", realtime.EventDelete, o)
	return nil
}

// SaveProgressLog records a manual monthly value. One log per calendar
// month; a second submission overwrites. For non-commercial objectives the
// latest log becomes the objective's current value on the next read.
func (s *ObjectiveService) SaveProgressLog(ctx context.Context, objectiveID uuid.UUID, req *models.SaveProgressLogRequest) (*models.ProgressLog, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, errors.New("month must be between 1 and 12")
	}

	o, err := s.Repo.Get(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	entry := &models.ProgressLog{
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := s.Repo.UpsertProgressLog(ctx, objectiveID, entry); err != nil {
		return nil, err
	}

	cache.InvalidateObjectiveCaches(ctx, o.SpaceID)
	s.Hub.Publish("progress_logs", realtime.EventInsert, entry)
	return entry, nil
}

func (s *ObjectiveService) DeleteProgressLog(ctx context.Context, objectiveID uuid.UUID, month, year int) error {
	o, err := s.Repo.Get(ctx, objectiveID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProgressLog(ctx, objectiveID, month, year); err != nil {
		return err
	}

	// Deleting the latest log changes a non-commercial objective's current
	// value, so bring the stored copy up to date right away.
	if !o.IsCommercial {
		if value, err := s.Repo.LatestLogValue(ctx, objectiveID); err == nil {
			status := tracking.ClassifyStatus(value, o.TargetValue, o.Deadline, timeutil.Now())
			s.reconcile(objectiveID, value, status)
		}
	}

	cache.InvalidateObjectiveCaches(ctx, o.SpaceID)
	s.Hub.Publish("progress_logs", realtime.EventDelete, map[string]interface{}{
		"objective_id": objectiveID,
		"month":        month,
		"year":         year,
	})
	return nil
}

// Stats counts objectives per derived status for a space.
func (s *ObjectiveService) Stats(ctx context.Context, spaceID string) (models.ObjectiveStats, error) {
	objectives, err := s.List(ctx, spaceID)
	if err != nil {
		return models.ObjectiveStats{}, err
	}
	return tracking.ObjectiveStatsFor(objectives), nil
}
