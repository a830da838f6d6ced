package userplan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

// Service tracks the patient's progress on their current plan.
//
// There is a single implicit patient: the current plan is simply the most
// recently appended one.
type Service struct {
	store domain.Store
	now   func() time.Time
	newID func() string

	// mu serialises activity updates so concurrent edits to one plan don't overwrite each other.
	mu sync.Mutex
}

func NewService(store domain.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// GetCurrentPlan returns the most recent user plan, or nil if there is none.
func (s *Service) GetCurrentPlan(ctx context.Context) (*domain.UserPlan, error) {
	plan, err := s.store.LatestUserPlan(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load current plan", "error", err)
		return nil, err
	}
	return plan, nil
}

type UpdateActivityInput struct {
	PlanID       domain.UserPlanID
	SuggestionID domain.SuggestionID
	Status       domain.ActivityStatus
	// Notes is left untouched when nil.
	Notes *string
}

// UpdateActivity sets a suggestion's status (and notes, when given) and appends
// one activity log entry.
func (s *Service) UpdateActivity(ctx context.Context, in UpdateActivityInput) (*domain.ActivityLogEntry, error) {
	log := observability.LoggerFromContext(ctx).With(
		"user_plan_id", in.PlanID,
		"suggestion_id", in.SuggestionID,
		"status", in.Status,
	)

	if !in.Status.Valid() {
		log.Warn("rejected activity update with unknown status")
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.store.GetUserPlan(ctx, in.PlanID)
	if err != nil {
		log.Warn("update activity: plan lookup failed", "error", err)
		return nil, err
	}

	suggestion := plan.FindSuggestion(in.SuggestionID)
	if suggestion == nil {
		log.Warn("update activity: suggestion not found")
		return nil, domain.ErrSuggestionNotFound
	}

	suggestion.Status = in.Status
	if in.Notes != nil {
		suggestion.Notes = *in.Notes
	}

	if err := s.store.UpdateUserPlan(ctx, plan); err != nil {
		log.Error("failed to update user plan", "error", err)
		return nil, fmt.Errorf("update activity: %w", err)
	}

	entry := &domain.ActivityLogEntry{
		ID:           domain.ActivityLogID(s.newID()),
		PlanID:       plan.ID,
		SuggestionID: suggestion.ID,
		Status:       suggestion.Status,
		Notes:        suggestion.Notes,
		Timestamp:    s.now(),
	}

	if err := s.store.AppendActivityLog(ctx, entry); err != nil {
		log.Error("failed to append activity log", "error", err)
		return nil, fmt.Errorf("append activity log: %w", err)
	}

	log.Info("activity updated", "log_id", entry.ID)
	return entry, nil
}

// ActivityLog lists log entries in append order, optionally for one plan.
func (s *Service) ActivityLog(ctx context.Context, planID domain.UserPlanID) ([]*domain.ActivityLogEntry, error) {
	entries, err := s.store.ListActivityLog(ctx, planID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list activity log",
			"user_plan_id", planID,
			"error", err)
		return nil, err
	}
	return entries, nil
}
