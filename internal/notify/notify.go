// Package notify serves the upcoming follow-up badge for a user.
package notify

import (
	"context"
	"time"

	"smart-fuel-crm/internal/cache"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	dto "smart-fuel-crm/pkg/models"
)

const keyPrefix = "crm:upcoming:"

// DefaultTTL bounds how stale the badge may be.
const DefaultTTL = 5 * time.Minute

// Upcoming is one entry of the notification list.
type Upcoming struct {
	ID               string `json:"id"`
	ClientID         string `json:"client_id"`
	CompanyName      string `json:"company_name"`
	NextFollowUpDate string `json:"next_follow_up_date"`
}

type Service struct {
	followUps *repository.FollowUpRepository
	query     *cache.CachedQuery[[]Upcoming]
	now       func() time.Time
}

func NewService(followUps *repository.FollowUpRepository, c cache.ICache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := func(p ...any) string { return keyPrefix + p[0].(string) }
	return &Service{
		followUps: followUps,
		query:     cache.NewCachedQuery[[]Upcoming](c, "[upcoming]", key, ttl),
		now:       time.Now,
	}
}

// Upcoming lists follow-ups scheduled from today on, soonest first.
func (s *Service) Upcoming(ctx context.Context, userID string) ([]Upcoming, error) {
	return s.query.Get(ctx, func(ctx context.Context) ([]Upcoming, error) {
		rows, err := s.followUps.Upcoming(ctx, userID, s.now().Format(models.DateLayout))
		if err != nil {
			return nil, err
		}
		out := make([]Upcoming, 0, len(rows))
		for _, f := range rows {
			out = append(out, Upcoming{
				ID:               f.ID,
				ClientID:         f.ClientID,
				CompanyName:      f.Client.CompanyName,
				NextFollowUpDate: *f.NextFollowUpDate,
			})
		}
		return out, nil
	}, userID)
}

// Clear unschedules the given follow-ups and drops the user's cached list.
func (s *Service) Clear(ctx context.Context, userID string, ids []string) (dto.ClearResult, error) {
	n, err := s.followUps.ClearNextDates(ctx, userID, ids)
	if err != nil {
		return dto.ClearResult{Requested: len(ids)}, err
	}
	s.Invalidate(ctx, userID)
	return dto.ClearResult{Requested: len(ids), Cleared: n}, nil
}

// Invalidate is called after anything that changes a user's schedule.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if err := s.query.Invalidate(ctx, userID); err != nil {
		logger.Warnw("upcoming cache invalidation failed", "user_id", userID, "error", err)
	}
}
