package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/farum-care/internal/domain"
)

// Store is an in-memory implementation of domain.Store.
// It is NOT persistent and is only suitable for development / local mode.
//
// A single lock guards all three collections. Entities are copied on the way
// in and on the way out, so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	treatmentPlans     map[domain.TreatmentPlanID]*domain.TreatmentPlan
	treatmentPlanOrder []domain.TreatmentPlanID

	userPlans     map[domain.UserPlanID]*domain.UserPlan
	userPlanOrder []domain.UserPlanID

	activityLog []*domain.ActivityLogEntry
}

var _ domain.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Clear drops every collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return nil
}

func (s *Store) reset() {
	s.treatmentPlans = make(map[domain.TreatmentPlanID]*domain.TreatmentPlan)
	s.treatmentPlanOrder = nil
	s.userPlans = make(map[domain.UserPlanID]*domain.UserPlan)
	s.userPlanOrder = nil
	s.activityLog = nil
}
