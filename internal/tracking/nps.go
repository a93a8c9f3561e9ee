package tracking

import (
	"math"

	"painel-conto/internal/models"
)

// AverageNPS is the mean of a client's NPS history rounded to one decimal.
// Zero when the history is empty.
func AverageNPS(history []*models.NPSRecord) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, r := range history {
		sum += float64(r.Score)
	}
	return math.Round(sum/float64(len(history))*10) / 10
}

// LatestNPS returns the most recent score by (year, month), or false when the
// history is empty.
func LatestNPS(history []*models.NPSRecord) (int, bool) {
	if len(history) == 0 {
		return 0, false
	}
	latest := history[0]
	for _, r := range history[1:] {
		if r.Year > latest.Year || (r.Year == latest.Year && r.Month > latest.Month) {
			latest = r
		}
	}
	return latest.Score, true
}

// ClientStatsFor summarizes the client base: status counts, recurring revenue
// over active clients, average ticket, and the global average NPS across all
// clients' histories.
func ClientStatsFor(clients []*models.Client) models.ClientStats {
	var stats models.ClientStats
	var npsSum float64
	var npsCount int

	for _, c := range clients {
		switch c.Status {
		case models.ClientActive:
			stats.ActiveCount++
			stats.TotalMRR += c.MonthlyValue
		case models.ClientInactive:
			stats.InactiveCount++
		case models.ClientChurn:
			stats.ChurnCount++
		}
		for _, r := range c.NPSHistory {
			npsSum += float64(r.Score)
			npsCount++
		}
	}

	if stats.ActiveCount > 0 {
		stats.AvgTicket = math.Round(stats.TotalMRR / float64(stats.ActiveCount))
	}
	if npsCount > 0 {
		stats.AvgNPS = math.Round(npsSum/float64(npsCount)*10) / 10
	}
	return stats
}
