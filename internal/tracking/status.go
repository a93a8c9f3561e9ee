// Package tracking holds the derived-state computations of the dashboard:
// objective status classification, commercial value aggregation, pipeline and
// client statistics, and the stage-automation scan. Everything here is pure
// and synchronous; persistence and scheduling live in services.
package tracking

import (
	"math"
	"time"

	"painel-conto/internal/models"
)

// Slack bands, in percentage points below the expected progress, that keep an
// objective classified as on_track / at_risk.
const (
	onTrackSlack = 10
	atRiskSlack  = 25
)

// ClassifyStatus maps (current, target, deadline) to a qualitative status
// relative to now. The evaluation window runs from the start of now's
// calendar year to the deadline: the fraction of it elapsed is the progress
// the objective "should" have. When the window is degenerate (deadline
// already passed, or before the year start) absolute thresholds apply
// instead. Negative progress is not clamped.
func ClassifyStatus(current, target float64, deadline, now time.Time) models.ObjectiveStatus {
	if target == 0 {
		return models.StatusOnTrack
	}
	progress := current / target * 100

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	totalDays := deadline.Sub(yearStart).Hours() / 24
	daysElapsed := now.Sub(yearStart).Hours() / 24

	if totalDays <= 0 || daysElapsed <= 0 {
		if progress >= 100 {
			return models.StatusOnTrack
		}
		if progress >= 75 {
			return models.StatusAtRisk
		}
		return models.StatusBehind
	}

	expectedProgress := daysElapsed / totalDays * 100

	if progress >= expectedProgress-onTrackSlack {
		return models.StatusOnTrack
	}
	if progress >= expectedProgress-atRiskSlack {
		return models.StatusAtRisk
	}
	return models.StatusBehind
}

// ProgressPercent returns the objective's completion as a rounded integer
// percentage. Not clamped: an over-target objective reports more than 100 and
// callers clamp at render time. A zero target reports 0.
func ProgressPercent(o *models.Objective) int {
	if o.TargetValue == 0 {
		return 0
	}
	return int(math.Round(o.CurrentValue / o.TargetValue * 100))
}

// ObjectiveStatsFor counts objectives per status. Statuses must already be
// derived (see ObjectiveService.List).
func ObjectiveStatsFor(objectives []*models.Objective) models.ObjectiveStats {
	stats := models.ObjectiveStats{Total: len(objectives)}
	for _, o := range objectives {
		switch o.Status {
		case models.StatusOnTrack:
			stats.OnTrack++
		case models.StatusAtRisk:
			stats.AtRisk++
		case models.StatusBehind:
			stats.Behind++
		}
	}
	return stats
}
