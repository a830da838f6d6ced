package memory

import (
	"context"
	"errors"

	"github.com/PabloGalante/farum-care/internal/domain"
)

func (s *Store) AppendTreatmentPlan(ctx context.Context, plan *domain.TreatmentPlan) error {
	if plan == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.treatmentPlans[plan.ID]; exists {
		return errors.New("treatment plan already exists")
	}

	s.treatmentPlans[plan.ID] = plan.Clone()
	s.treatmentPlanOrder = append(s.treatmentPlanOrder, plan.ID)
	return nil
}

func (s *Store) UpdateTreatmentPlan(ctx context.Context, plan *domain.TreatmentPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.treatmentPlans[plan.ID]; !exists {
		return domain.ErrTreatmentPlanNotFound
	}

	s.treatmentPlans[plan.ID] = plan.Clone()
	return nil
}

func (s *Store) GetTreatmentPlan(ctx context.Context, id domain.TreatmentPlanID) (*domain.TreatmentPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.treatmentPlans[id]
	if !ok {
		return nil, domain.ErrTreatmentPlanNotFound
	}
	return plan.Clone(), nil
}

func (s *Store) FirstPendingTreatmentPlan(ctx context.Context) (*domain.TreatmentPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.treatmentPlanOrder {
		if plan := s.treatmentPlans[id]; plan.Status == domain.PlanPending {
			return plan.Clone(), nil
		}
	}
	return nil, nil
}

func (s *Store) ListTreatmentPlans(ctx context.Context) ([]*domain.TreatmentPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.TreatmentPlan, 0, len(s.treatmentPlanOrder))
	for _, id := range s.treatmentPlanOrder {
		out = append(out, s.treatmentPlans[id].Clone())
	}
	return out, nil
}
