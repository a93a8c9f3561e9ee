package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"painel-conto/internal/cache"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
)

var (
	ErrDuplicateSpace = errors.New("a space with this name already exists")
	ErrLastSpace      = errors.New("cannot delete the last remaining space")
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSpaceID slugifies a label into a space id: lowercase, accents
// stripped, runs of non-alphanumerics collapsed to single hyphens.
func GenerateSpaceID(label string) string {
	s := strings.ToLower(norm.NFD.String(label))
	var b strings.Builder
	for _, r := range s {
		// NFD puts combining marks after the base letter; skip them
		if r >= 0x0300 && r <= 0x036f {
			continue
		}
		b.WriteRune(r)
	}
	slug := nonAlnum.ReplaceAllString(b.String(), "-")
	return strings.Trim(slug, "-")
}

type SpaceService struct {
	Repo    *repositories.SpaceRepository
	Hub     *realtime.Hub
	listTTL time.Duration
}

func NewSpaceService(repo *repositories.SpaceRepository, hub *realtime.Hub, listTTL time.Duration) *SpaceService {
	return &SpaceService{Repo: repo, Hub: hub, listTTL: listTTL}
}

// List returns all spaces ordered by label. The list changes rarely, so it
// caches longer than the per-space data lists.
func (s *SpaceService) List(ctx context.Context) ([]*models.Space, error) {
	if data, ok := cache.GetCached(ctx, cache.SpaceListKey); ok {
		var spaces []*models.Space
		if err := json.Unmarshal(data, &spaces); err == nil {
			return spaces, nil
		}
	}

	spaces, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(spaces); err == nil {
		cache.SetCached(ctx, cache.SpaceListKey, data, s.listTTL)
	}
	return spaces, nil
}

func (s *SpaceService) Get(ctx context.Context, id string) (*models.Space, error) {
	return s.Repo.Get(ctx, id)
}

// Create adds a new space. The id is derived from the label; a label that
// slugifies to an existing id is rejected.
func (s *SpaceService) Create(ctx context.Context, req *models.CreateSpaceRequest) (*models.Space, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, errors.New("label is required")
	}

	id := GenerateSpaceID(req.Label)
	if id == "" {
		return nil, errors.New("label must contain letters or digits")
	}

	exists, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSpace
	}

	space := &models.Space{
		ID:          id,
		Label:       strings.TrimSpace(req.Label),
		Description: req.Description,
		Color:       req.Color,
	}
	if err := s.Repo.Create(ctx, space); err != nil {
		return nil, err
	}

	cache.InvalidateSpaceCaches(ctx)
	s.Hub.Publish("spaces", realtime.EventInsert, space)
	return space, nil
}

// Delete removes a space. At least one space must remain.
func (s *SpaceService) Delete(ctx context.Context, id string) error {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastSpace
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateSpaceCaches(ctx)
	s.Hub.Publish("spaces", realtime.EventDelete, map[string]interface{}{
		"id":         id,
		"deleted_at": time.Now(),
	})
	return nil
}
