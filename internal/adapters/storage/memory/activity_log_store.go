package memory

import (
	"context"

	"github.com/PabloGalante/farum-care/internal/domain"
)

func (s *Store) AppendActivityLog(ctx context.Context, entry *domain.ActivityLogEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := *entry
	s.activityLog = append(s.activityLog, &e)
	return nil
}

func (s *Store) ListActivityLog(ctx context.Context, planID domain.UserPlanID) ([]*domain.ActivityLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ActivityLogEntry, 0, len(s.activityLog))
	for _, e := range s.activityLog {
		if planID != "" && e.PlanID != planID {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	return out, nil
}
