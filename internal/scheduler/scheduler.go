package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"doclens/internal/session"
)

const (
	HourlyCleanupSpec     = "0 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
)

// Scheduler prunes expired document sessions so abandoned extractions do
// not sit in memory past their TTL.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	sessions *session.Store
	log      *slog.Logger
}

func New(ctx context.Context, sessions *session.Store, log *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:      ctx,
		cron:     c,
		sessions: sessions,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(HourlyCleanupSpec, s.cleanupSessions); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) cleanupSessions() {
	select {
	case <-s.ctx.Done():
		s.log.InfoContext(s.ctx, "Scheduler context is done",
			"error", s.ctx.Err())
		return
	default:
	}

	removed := s.sessions.PruneExpired(time.Now().UTC())
	if removed > 0 {
		s.log.InfoContext(s.ctx, "Expired document sessions are pruned",
			"removed", removed,
			"remaining", s.sessions.Len())
	}
}
