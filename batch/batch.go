// Package batch runs the scheduled jobs: the nightly scheme-universe
// refresh and the SIP debit run.
package batch

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler drives the jobs on a cron spec in a fixed timezone. NAV
// publication follows Indian market hours, so the default config runs
// it on IST mornings.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewScheduler builds a scheduler in the named timezone.
func NewScheduler(timezone string, log *logrus.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: cron.New(cron.WithLocation(loc)), log: log}, nil
}

// Add registers a named job on a standard 5-field cron spec.
func (s *Scheduler) Add(spec, name string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.WithField("job", name).Info("job starting")
		if err := job(); err != nil {
			s.log.WithField("job", name).WithError(err).Error("job failed")
			return
		}
		s.log.WithField("job", name).Info("job done")
	})
	return err
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
