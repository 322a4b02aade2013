package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the checker on a fixed interval in daemon mode. The
// first cycle runs immediately on start; subsequent cycles follow the
// configured interval.
type Scheduler struct {
	cron    *cron.Cron
	checker *PriceChecker
}

// NewScheduler wraps a checker in a cron-driven loop.
func NewScheduler(checker *PriceChecker) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		checker: checker,
	}
}

// Start schedules the recurring check cycle and kicks off the first one.
func (s *Scheduler) Start(intervalHours int) error {
	if intervalHours <= 0 {
		intervalHours = 12
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %dh", intervalHours), s.run)
	if err != nil {
		return fmt.Errorf("failed to schedule check cycle: %v", err)
	}

	go s.run()

	s.cron.Start()
	log.Printf("Check cycle scheduled every %d hours", intervalHours)
	return nil
}

// Stop halts the cron loop. A cycle already in flight finishes.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) run() {
	if err := s.checker.RunOnce(); err != nil {
		log.Printf("Check cycle failed: %v", err)
	}
}
