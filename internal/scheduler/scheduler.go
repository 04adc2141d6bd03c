package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/jobs"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
)

// Scheduler runs background jobs on cron expressions with a seconds field,
// evaluated in UTC.
type Scheduler struct {
	cron *cron.Cron
}

func New(overdue *jobs.OverdueReporter, overdueSpec string) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(overdueSpec, overdue.RunScheduled); err != nil {
		return nil, err
	}
	logger.Info("cron jobs registered", "overdue_scan", overdueSpec)
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	logger.Info("starting cron scheduler")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
