package tracking

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"painel-conto/internal/models"
)

func TestLeadsDueForFollowup(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	threshold := 48 * time.Hour

	stale := &models.Lead{
		ID:             uuid.New(),
		Stage:          models.StageProposal,
		StageChangedAt: now.Add(-72 * time.Hour),
	}
	exactlyAtThreshold := &models.Lead{
		ID:             uuid.New(),
		Stage:          models.StageProposal,
		StageChangedAt: now.Add(-48 * time.Hour),
	}
	fresh := &models.Lead{
		ID:             uuid.New(),
		Stage:          models.StageProposal,
		StageChangedAt: now.Add(-time.Hour),
	}
	staleButWrongStage := &models.Lead{
		ID:             uuid.New(),
		Stage:          models.StageNegotiation,
		StageChangedAt: now.Add(-200 * time.Hour),
	}

	due := LeadsDueForFollowup([]*models.Lead{stale, exactlyAtThreshold, fresh, staleButWrongStage}, threshold, now)

	if len(due) != 2 {
		t.Fatalf("expected 2 due leads, got %d", len(due))
	}
	if due[0].ID != stale.ID || due[1].ID != exactlyAtThreshold.ID {
		t.Errorf("wrong leads selected for followup")
	}
}

func TestLeadsDueForFollowupEmpty(t *testing.T) {
	now := time.Now()
	if due := LeadsDueForFollowup(nil, 48*time.Hour, now); due != nil {
		t.Errorf("expected no due leads, got %d", len(due))
	}
}
