package memory

import (
	"context"
	"errors"

	"github.com/PabloGalante/farum-care/internal/domain"
)

func (s *Store) AppendUserPlan(ctx context.Context, plan *domain.UserPlan) error {
	if plan == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userPlans[plan.ID]; exists {
		return errors.New("user plan already exists")
	}

	s.userPlans[plan.ID] = plan.Clone()
	s.userPlanOrder = append(s.userPlanOrder, plan.ID)
	return nil
}

func (s *Store) UpdateUserPlan(ctx context.Context, plan *domain.UserPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userPlans[plan.ID]; !exists {
		return domain.ErrUserPlanNotFound
	}

	s.userPlans[plan.ID] = plan.Clone()
	return nil
}

func (s *Store) GetUserPlan(ctx context.Context, id domain.UserPlanID) (*domain.UserPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.userPlans[id]
	if !ok {
		return nil, domain.ErrUserPlanNotFound
	}
	return plan.Clone(), nil
}

// LatestUserPlan returns the most recently appended plan.
func (s *Store) LatestUserPlan(ctx context.Context) (*domain.UserPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.userPlanOrder) == 0 {
		return nil, nil
	}
	last := s.userPlanOrder[len(s.userPlanOrder)-1]
	return s.userPlans[last].Clone(), nil
}

func (s *Store) ListUserPlans(ctx context.Context) ([]*domain.UserPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.UserPlan, 0, len(s.userPlanOrder))
	for _, id := range s.userPlanOrder {
		out = append(out, s.userPlans[id].Clone())
	}
	return out, nil
}
