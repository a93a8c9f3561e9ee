package tracking

import (
	"testing"

	"painel-conto/internal/models"
)

func TestAverageNPS(t *testing.T) {
	history := []*models.NPSRecord{
		{Month: 1, Year: 2026, Score: 9},
		{Month: 2, Year: 2026, Score: 8},
		{Month: 3, Year: 2026, Score: 6},
	}
	if got := AverageNPS(history); got != 7.7 {
		t.Errorf("expected 7.7, got %v", got)
	}
	if got := AverageNPS(nil); got != 0 {
		t.Errorf("empty history: expected 0, got %v", got)
	}
}

func TestLatestNPS(t *testing.T) {
	history := []*models.NPSRecord{
		{Month: 12, Year: 2025, Score: 4},
		{Month: 3, Year: 2026, Score: 9},
		{Month: 1, Year: 2026, Score: 7},
	}
	score, ok := LatestNPS(history)
	if !ok || score != 9 {
		t.Errorf("expected latest score 9, got %d (ok=%v)", score, ok)
	}

	if _, ok := LatestNPS(nil); ok {
		t.Error("empty history must report no latest score")
	}
}

func TestClientStatsFor(t *testing.T) {
	clients := []*models.Client{
		{Status: models.ClientActive, MonthlyValue: 1000, NPSHistory: []*models.NPSRecord{{Score: 8}}},
		{Status: models.ClientActive, MonthlyValue: 2000, NPSHistory: []*models.NPSRecord{{Score: 10}}},
		{Status: models.ClientChurn, MonthlyValue: 900},
		{Status: models.ClientInactive, MonthlyValue: 100},
	}
	stats := ClientStatsFor(clients)

	if stats.ActiveCount != 2 || stats.InactiveCount != 1 || stats.ChurnCount != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalMRR != 3000 {
		t.Errorf("expected MRR 3000, got %v", stats.TotalMRR)
	}
	if stats.AvgTicket != 1500 {
		t.Errorf("expected avg ticket 1500, got %v", stats.AvgTicket)
	}
	if stats.AvgNPS != 9 {
		t.Errorf("expected avg NPS 9, got %v", stats.AvgNPS)
	}
}
