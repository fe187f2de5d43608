// Package profile resolves the display name recorded as author of follow-ups and notes.
package profile

import (
	"context"
	"errors"
	"strings"

	"smart-fuel-crm/internal/repository"
)

// UnknownUser is recorded when neither a full name nor an email is available.
const UnknownUser = "مستخدم غير معروف"

type Service struct {
	profiles *repository.ProfileRepository
}

func NewService(profiles *repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// DisplayName prefers the profile's full name, then its email.
func (s *Service) DisplayName(ctx context.Context, userID string) (string, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return UnknownUser, nil
	}
	if err != nil {
		return "", err
	}
	if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		return strings.TrimSpace(*p.FullName), nil
	}
	if p.Email != "" {
		return p.Email, nil
	}
	return UnknownUser, nil
}
