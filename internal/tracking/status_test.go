package tracking

import (
	"testing"
	"time"

	"painel-conto/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyStatusZeroTarget(t *testing.T) {
	now := date(2026, time.July, 2)
	deadline := date(2026, time.December, 31)

	if got := ClassifyStatus(0, 0, deadline, now); got != models.StatusOnTrack {
		t.Errorf("zero target: expected on_track, got %s", got)
	}
	if got := ClassifyStatus(-500, 0, deadline, now); got != models.StatusOnTrack {
		t.Errorf("zero target with negative current: expected on_track, got %s", got)
	}
}

func TestClassifyStatusDeterministic(t *testing.T) {
	now := date(2026, time.July, 2)
	deadline := date(2026, time.December, 31)

	first := ClassifyStatus(4000, 10000, deadline, now)
	for i := 0; i < 10; i++ {
		if got := ClassifyStatus(4000, 10000, deadline, now); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}

func TestClassifyStatusMidYearBoundary(t *testing.T) {
	// Jul 2 is ~50% of the Jan 1 - Dec 31 window. 40% progress sits exactly
	// on the on_track boundary (expected-10), which uses >=.
	now := date(2026, time.July, 2)
	deadline := date(2026, time.December, 31)

	if got := ClassifyStatus(4000, 10000, deadline, now); got != models.StatusOnTrack {
		t.Errorf("40%% at midpoint: expected on_track, got %s", got)
	}
}

func TestClassifyStatusBehindAtMidYear(t *testing.T) {
	now := date(2026, time.July, 2)
	deadline := date(2026, time.December, 31)

	if got := ClassifyStatus(1000, 10000, deadline, now); got != models.StatusBehind {
		t.Errorf("10%% at midpoint: expected behind, got %s", got)
	}
}

func TestClassifyStatusAtRiskBand(t *testing.T) {
	// ~50% expected, 30% progress: inside the -25 band but outside -10.
	now := date(2026, time.July, 2)
	deadline := date(2026, time.December, 31)

	if got := ClassifyStatus(3000, 10000, deadline, now); got != models.StatusAtRisk {
		t.Errorf("30%% at midpoint: expected at_risk, got %s", got)
	}
}

func TestClassifyStatusPastDeadlineFallback(t *testing.T) {
	// Deadline before the year start: totalDays <= 0, absolute thresholds.
	now := date(2026, time.March, 1)
	deadline := date(2025, time.June, 30)

	cases := []struct {
		current float64
		want    models.ObjectiveStatus
	}{
		{10000, models.StatusOnTrack},
		{12000, models.StatusOnTrack},
		{7500, models.StatusAtRisk},
		{7400, models.StatusBehind},
		{0, models.StatusBehind},
	}
	for _, c := range cases {
		if got := ClassifyStatus(c.current, 10000, deadline, now); got != c.want {
			t.Errorf("current=%v: expected %s, got %s", c.current, c.want, got)
		}
	}
}

func TestProgressPercentUnclamped(t *testing.T) {
	o := &models.Objective{CurrentValue: 15000, TargetValue: 10000}
	if got := ProgressPercent(o); got != 150 {
		t.Errorf("expected 150, got %d", got)
	}

	o = &models.Objective{CurrentValue: 333, TargetValue: 1000}
	if got := ProgressPercent(o); got != 33 {
		t.Errorf("expected 33, got %d", got)
	}

	o = &models.Objective{CurrentValue: 5, TargetValue: 0}
	if got := ProgressPercent(o); got != 0 {
		t.Errorf("zero target: expected 0, got %d", got)
	}
}

func TestObjectiveStatsFor(t *testing.T) {
	objectives := []*models.Objective{
		{Status: models.StatusOnTrack},
		{Status: models.StatusOnTrack},
		{Status: models.StatusAtRisk},
		{Status: models.StatusBehind},
	}
	stats := ObjectiveStatsFor(objectives)
	if stats.Total != 4 || stats.OnTrack != 2 || stats.AtRisk != 1 || stats.Behind != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
