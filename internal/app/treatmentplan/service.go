package treatmentplan

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

// DefaultPatientName is used when a transcript arrives without a patient name.
const DefaultPatientName = "Unknown Patient"

// nextSessionAfter is the gap between approval and the patient's next session.
const nextSessionAfter = 7 * 24 * time.Hour

// Service runs the therapist-facing review lifecycle:
// transcript → pending plan → approved (user plan created) or needs_revision.
type Service struct {
	store     domain.Store
	generator domain.PlanGenerator
	now       func() time.Time
	newID     func() string

	// mu serialises read-modify-write sequences on treatment plans.
	mu sync.Mutex
}

func NewService(store domain.Store, generator domain.PlanGenerator) *Service {
	return &Service{
		store:     store,
		generator: generator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// GetPendingPlan returns the first pending plan in append order, or nil.
func (s *Service) GetPendingPlan(ctx context.Context) (*domain.TreatmentPlan, error) {
	plan, err := s.store.FirstPendingTreatmentPlan(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load pending plan", "error", err)
		return nil, err
	}
	return plan, nil
}

// Approve marks the plan approved, replaces its suggestions with the supplied
// ones, and appends a user plan built from them. It returns the user plan id.
func (s *Service) Approve(
	ctx context.Context,
	planID domain.TreatmentPlanID,
	suggestions []domain.Suggestion,
) (domain.UserPlanID, error) {
	log := observability.LoggerFromContext(ctx).With(
		"treatment_plan_id", planID,
		"suggestions_count", len(suggestions),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.store.GetTreatmentPlan(ctx, planID)
	if err != nil {
		log.Warn("approve: plan lookup failed", "error", err)
		return "", err
	}

	now := s.now()
	approved := s.normalize(suggestions)

	plan.Status = domain.PlanApproved
	plan.ApprovedAt = &now
	plan.Suggestions = approved

	if err := s.store.UpdateTreatmentPlan(ctx, plan); err != nil {
		log.Error("failed to update treatment plan", "error", err)
		return "", fmt.Errorf("approve treatment plan: %w", err)
	}

	userPlan := &domain.UserPlan{
		ID:              domain.UserPlanID(s.newID()),
		TreatmentPlanID: plan.ID,
		PatientID:       domain.DemoPatientID,
		PatientName:     plan.PatientName,
		StartDate:       now,
		NextSession:     now.Add(nextSessionAfter),
		Suggestions:     domain.CloneSuggestions(approved),
	}

	if err := s.store.AppendUserPlan(ctx, userPlan); err != nil {
		log.Error("failed to append user plan", "error", err)
		return "", fmt.Errorf("create user plan: %w", err)
	}

	log.Info("treatment plan approved", "user_plan_id", userPlan.ID)
	return userPlan.ID, nil
}

// RequestRevision flags the plan for rework. Regenerating content is left to
// a later CreateFromTranscript call.
func (s *Service) RequestRevision(ctx context.Context, planID domain.TreatmentPlanID) error {
	log := observability.LoggerFromContext(ctx).With("treatment_plan_id", planID)

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.store.GetTreatmentPlan(ctx, planID)
	if err != nil {
		log.Warn("revise: plan lookup failed", "error", err)
		return err
	}

	now := s.now()
	plan.Status = domain.PlanNeedsRevision
	plan.RevisionRequestedAt = &now

	if err := s.store.UpdateTreatmentPlan(ctx, plan); err != nil {
		log.Error("failed to update treatment plan", "error", err)
		return fmt.Errorf("request revision: %w", err)
	}

	log.Info("revision requested")
	return nil
}

type CreateFromTranscriptInput struct {
	Transcript  string
	PatientName string
}

// CreateFromTranscript asks the generator for a draft and stores it as a new pending plan.
func (s *Service) CreateFromTranscript(ctx context.Context, in CreateFromTranscriptInput) (domain.TreatmentPlanID, error) {
	patientName := strings.TrimSpace(in.PatientName)
	if patientName == "" {
		patientName = DefaultPatientName
	}

	log := observability.LoggerFromContext(ctx).With(
		"patient_name", patientName,
		"transcript_len", len(in.Transcript),
	)
	log.Info("generating treatment plan from transcript")

	draft, err := s.generator.GenerateTreatmentPlan(ctx, in.Transcript, patientName)
	if err != nil {
		log.Error("plan generation failed", "error", err)
		return "", fmt.Errorf("generate treatment plan: %w", err)
	}

	plan := &domain.TreatmentPlan{
		ID:             domain.TreatmentPlanID(s.newID()),
		PatientName:    patientName,
		SessionDate:    s.now(),
		SessionSummary: draft.SessionSummary,
		Status:         domain.PlanPending,
		Suggestions:    s.normalize(draft.Suggestions),
	}

	if err := s.store.AppendTreatmentPlan(ctx, plan); err != nil {
		log.Error("failed to append treatment plan", "error", err)
		return "", fmt.Errorf("store treatment plan: %w", err)
	}

	log.Info("treatment plan created", "treatment_plan_id", plan.ID)
	return plan.ID, nil
}

// normalize copies suggestions in order, filling missing ids, types and statuses.
func (s *Service) normalize(in []domain.Suggestion) []domain.Suggestion {
	out := domain.CloneSuggestions(in)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = domain.SuggestionID(s.newID())
		}
		if out[i].Type == "" {
			out[i].Type = domain.SuggestionCustom
		}
		if out[i].Status == "" {
			out[i].Status = domain.ActivityPending
		}
	}
	return out
}
