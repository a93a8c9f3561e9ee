package tracking

import (
	"testing"

	"painel-conto/internal/models"
)

func TestPipelineStatsFor(t *testing.T) {
	leads := []*models.Lead{
		{Stage: models.StageNew, Value: 1000},
		{Stage: models.StageProposal, Value: 2000},
		{Stage: models.StageNegotiation, Value: 3000},
		{Stage: models.StageWon, Value: 4000},
		{Stage: models.StageLost, Value: 5000},
	}
	stats := PipelineStatsFor(leads)

	if stats.TotalLeads != 4 {
		t.Errorf("expected 4 active leads, got %d", stats.TotalLeads)
	}
	if stats.TotalValue != 10000 {
		t.Errorf("expected active value 10000, got %v", stats.TotalValue)
	}
	if stats.ProposalsSent != 3 {
		t.Errorf("expected 3 proposals sent, got %d", stats.ProposalsSent)
	}
	if stats.ConversionRate != 20 {
		t.Errorf("expected 20%% conversion, got %d", stats.ConversionRate)
	}
	if stats.InNegotiation != 3 {
		t.Errorf("expected 3 in negotiation, got %d", stats.InNegotiation)
	}
	if stats.WonCount != 1 || stats.WonValue != 4000 {
		t.Errorf("unexpected won stats: %+v", stats)
	}
}

func TestPipelineStatsForEmpty(t *testing.T) {
	stats := PipelineStatsFor(nil)
	if stats.TotalLeads != 0 || stats.ConversionRate != 0 {
		t.Errorf("unexpected stats for empty pipeline: %+v", stats)
	}
}
