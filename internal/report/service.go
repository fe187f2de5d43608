package report

import (
	"context"
	"time"

	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/status"
)

type Service struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos, now: time.Now}
}

// Fleet summarizes the user's clients by status; contracted clients convert.
func (s *Service) Fleet(ctx context.Context, userID string, r Range) (Summary, error) {
	b := r.Resolve(s.now())
	clients, err := s.repos.Clients.ListCreatedBetween(ctx, userID, b)
	if err != nil {
		return Summary{}, err
	}
	groups := make([]*string, len(clients))
	for i := range clients {
		groups[i] = clients[i].Status
	}
	sum := Aggregate(groups, status.FleetNew, func(v string) bool { return v == status.FleetContracted })

	sum.ContactEvents, err = s.repos.FollowUps.CountBetween(ctx, userID, b)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// POS summarizes the shared POS book by department; clients sent for contract convert.
func (s *Service) POS(ctx context.Context, r Range) (Summary, error) {
	b := r.Resolve(s.now())
	clients, err := s.repos.POSClients.ListCreatedBetween(ctx, b)
	if err != nil {
		return Summary{}, err
	}
	groups := make([]*string, len(clients))
	converted := 0
	for i := range clients {
		groups[i] = clients[i].Department
		if status.POSCall.Label(clients[i].Status) == status.POSSentForContract {
			converted++
		}
	}
	sum := Aggregate(groups, status.DepartmentUnset, nil)
	sum.setConverted(converted)

	sum.ContactEvents, err = s.repos.CallLogs.CountBetween(ctx, b)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}
