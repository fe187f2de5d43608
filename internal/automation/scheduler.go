package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"

	"smart-fuel-crm/internal/logger"
)

// Scheduler triggers the mailer on a cron spec with seconds, e.g. "0 0 8 * * *".
type Scheduler struct {
	cron   *cron.Cron
	mailer *FollowUpMailer
	now    func() time.Time
}

func NewScheduler(mailer *FollowUpMailer, spec string) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), mailer: mailer, now: time.Now}
	if err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("invalid FOLLOWUP_CRON %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if _, err := s.mailer.Run(ctx, s.now()); err != nil {
		logger.Errorw("scheduled follow-up run failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Infow("follow-up scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Infow("follow-up scheduler stopped")
}
