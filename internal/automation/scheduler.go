// Package automation runs the server-side pipeline sweeps that the product
// relies on, independent of any client being connected.
package automation

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"painel-conto/internal/cache"
	"painel-conto/internal/metrics"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
	"painel-conto/internal/timeutil"
	"painel-conto/internal/tracking"
)

// Scheduler periodically moves leads stuck in the proposal stage to
// follow-up once they exceed the configured threshold.
type Scheduler struct {
	leadRepo  *repositories.LeadRepository
	hub       *realtime.Hub
	threshold time.Duration
	interval  time.Duration

	running  int32
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewScheduler(leadRepo *repositories.LeadRepository, hub *realtime.Hub, threshold, interval time.Duration) *Scheduler {
	return &Scheduler{
		leadRepo:  leadRepo,
		hub:       hub,
		threshold: threshold,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the background sweep loop. One sweep runs immediately so a
// restart never leaves overdue proposals waiting a full interval.
func (s *Scheduler) Start() {
	log.Printf("[Automation] Starting follow-up sweeps every %v (threshold %v)", s.interval, s.threshold)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.Sweep(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background())
			case <-s.stopChan:
				log.Println("[Automation] Stopped")
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for an in-progress sweep.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// Sweep moves every overdue proposal, across all spaces, to follow-up. A
// second call while one is still running is skipped rather than queued.
func (s *Scheduler) Sweep(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		log.Println("[Automation] Sweep already running, skipping")
		return
	}
	defer atomic.StoreInt32(&s.running, 0)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	proposals, err := s.leadRepo.ListByStage(ctx, models.StageProposal)
	if err != nil {
		log.Printf("[Automation] Failed to list proposals: %v", err)
		return
	}

	now := timeutil.Now()
	due := tracking.LeadsDueForFollowup(proposals, s.threshold, now)
	if len(due) == 0 {
		metrics.AutomationRunsTotal.Inc()
		return
	}

	moved := 0
	touched := make(map[string]bool)
	for _, lead := range due {
		if err := s.leadRepo.UpdateStage(ctx, lead.ID, models.StageFollowup, now); err != nil {
			// One stuck lead must not block the rest of the sweep
			log.Printf("[Automation] Failed to move lead %s: %v", lead.ID, err)
			continue
		}
		lead.Stage = models.StageFollowup
		lead.StageChangedAt = now
		moved++
		touched[lead.SpaceID] = true

		metrics.LeadStageTransitions.WithLabelValues(string(models.StageFollowup), "true").Inc()
		s.hub.Publish("leads", realtime.EventUpdate, lead)
	}

	for spaceID := range touched {
		cache.InvalidateLeadCaches(ctx, spaceID)
	}

	metrics.AutomationRunsTotal.Inc()
	log.Printf("[Automation] Sweep complete: %d of %d overdue proposals moved to follow-up", moved, len(due))
}
