package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"commentboard/api/internal/repository"
)

// Scheduler sweeps rows whose expiry has already passed: stale sessions
// hourly and consumed-or-expired reset tokens daily. Token and session
// validity never depends on these sweeps; expiry is re-checked lazily on
// every use.
type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	users    *repository.UserRepository
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, users *repository.UserRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		users:    users,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweepSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.sweepResetTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}

func (s *Scheduler) sweepResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cleared, err := s.users.ClearExpiredResetTokens(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reset token sweep failed")
		return
	}
	if cleared > 0 {
		s.log.Info().Int64("cleared", cleared).Msg("expired reset tokens cleared")
	}
}
