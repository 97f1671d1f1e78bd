package scheduler

import (
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs at minute 0 of every hour.
const DefaultPurgeSchedule = "0 * * * *"

// Purger is satisfied by service.PasswordResetService and
// service.EmailVerificationService.
type Purger interface {
	PurgeExpired() (int64, error)
}

// PurgeJob names a purger for the logs.
type PurgeJob struct {
	Name   string
	Purger Purger
}

// TokenPurgeScheduler deletes expired one-time credentials: used or stale
// reset tokens and spent email verification codes.
type TokenPurgeScheduler struct {
	cron     *cron.Cron
	jobs     []PurgeJob
	schedule string
}

func NewTokenPurgeScheduler(schedule string, jobs ...PurgeJob) *TokenPurgeScheduler {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &TokenPurgeScheduler{
		cron:     cron.New(),
		jobs:     jobs,
		schedule: schedule,
	}
}

func (s *TokenPurgeScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for token purge", err, logger.Fields{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Token purge scheduler started", logger.Fields{
		"schedule": s.schedule,
		"jobs":     len(s.jobs),
	})
	return nil
}

// RunOnce runs every purge. A failing job is logged and retried on the next
// tick without stopping the others.
func (s *TokenPurgeScheduler) RunOnce() {
	for _, job := range s.jobs {
		removed, err := job.Purger.PurgeExpired()
		if err != nil {
			logger.Error("Failed to purge expired tokens", err, logger.Fields{"job": job.Name})
			continue
		}
		if removed > 0 {
			logger.Info("Purged expired tokens", logger.Fields{
				"job":     job.Name,
				"removed": removed,
			})
		}
	}
}

// Stop waits for a running purge to finish.
func (s *TokenPurgeScheduler) Stop() {
	logger.Info("Stopping token purge scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Token purge scheduler stopped")
}
