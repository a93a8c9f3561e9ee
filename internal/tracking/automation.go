package tracking

import (
	"time"

	"painel-conto/internal/models"
)

// LeadsDueForFollowup returns the leads sitting in the proposal stage whose
// last stage change is at least threshold old. These are the leads the
// automation moves to followup on its next tick.
func LeadsDueForFollowup(leads []*models.Lead, threshold time.Duration, now time.Time) []*models.Lead {
	var due []*models.Lead
	for _, l := range leads {
		if l.Stage != models.StageProposal {
			continue
		}
		if now.Sub(l.StageChangedAt) >= threshold {
			due = append(due, l)
		}
	}
	return due
}
