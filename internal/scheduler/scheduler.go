package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of periodic work. A failing run is logged and retried on
// the next tick; jobs must therefore be idempotent.
type Job func(ctx context.Context) error

// Scheduler runs jobs at fixed intervals. The interface exists so tests can
// drive jobs directly instead of waiting on a real clock.
type Scheduler interface {
	Every(interval time.Duration, name string, job Job) error
	Start()
	Stop()
}

// CronScheduler is the production Scheduler backed by robfig/cron.
type CronScheduler struct {
	cron *cron.Cron
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{cron: cron.New()}
}

// Every registers a job to run at the given interval.
func (s *CronScheduler) Every(interval time.Duration, name string, job Job) error {
	spec := fmt.Sprintf("@every %s", interval)
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil {
			logrus.WithError(err).Errorf("Scheduled job %s failed", name)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	return nil
}

func (s *CronScheduler) Start() {
	s.cron.Start()
}

func (s *CronScheduler) Stop() {
	s.cron.Stop()
}
