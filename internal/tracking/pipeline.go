package tracking

import (
	"math"

	"painel-conto/internal/models"
)

// PipelineStatsFor summarizes the CRM funnel. Lost leads are excluded from
// the active totals; conversion rate is won over all leads, rounded.
func PipelineStatsFor(leads []*models.Lead) models.PipelineStats {
	var stats models.PipelineStats

	for _, l := range leads {
		if l.Stage != models.StageLost {
			stats.TotalLeads++
			stats.TotalValue += l.Value
		}
		switch l.Stage {
		case models.StageProposal, models.StageNegotiation, models.StageWon:
			stats.ProposalsSent++
		}
		if l.Stage == models.StageWon {
			stats.WonCount++
			stats.WonValue += l.Value
		}
		if l.Stage != models.StageWon && l.Stage != models.StageLost {
			stats.InNegotiation++
		}
	}

	if len(leads) > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.WonCount) / float64(len(leads)) * 100))
	}
	return stats
}
