package demo

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

//go:embed seed.yaml
var seedYAML []byte

type seedSuggestion struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Prompt      string `yaml:"prompt"`
	Frequency   string `yaml:"frequency"`
	Status      string `yaml:"status"`
	Notes       string `yaml:"notes"`
}

type seedFile struct {
	TreatmentPlan struct {
		ID             string           `yaml:"id"`
		PatientName    string           `yaml:"patientName"`
		SessionSummary string           `yaml:"sessionSummary"`
		Suggestions    []seedSuggestion `yaml:"suggestions"`
	} `yaml:"treatmentPlan"`

	UserPlan struct {
		ID                string           `yaml:"id"`
		TreatmentPlanID   string           `yaml:"treatmentPlanId"`
		PatientName       string           `yaml:"patientName"`
		StartDaysAgo      int              `yaml:"startDaysAgo"`
		NextSessionInDays int              `yaml:"nextSessionInDays"`
		Suggestions       []seedSuggestion `yaml:"suggestions"`
	} `yaml:"userPlan"`
}

// Counts reports collection sizes after a reset.
type Counts struct {
	TreatmentPlans int `json:"treatmentPlans"`
	UserPlans      int `json:"userPlans"`
	ActivityLogs   int `json:"activityLogs"`
}

// Seeder loads the sample treatment plan and user plan into a store.
type Seeder struct {
	store domain.Store
	now   func() time.Time
	mu    sync.Mutex
	seed  *seedFile
}

func NewSeeder(store domain.Store) (*Seeder, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &Seeder{
		store: store,
		now:   time.Now,
		seed:  &f,
	}, nil
}

// Seed appends one pending treatment plan and one user plan for the demo patient.
func (s *Seeder) Seed(ctx context.Context) error {
	now := s.now()

	tp := &domain.TreatmentPlan{
		ID:             domain.TreatmentPlanID(s.seed.TreatmentPlan.ID),
		PatientName:    s.seed.TreatmentPlan.PatientName,
		SessionDate:    now,
		SessionSummary: s.seed.TreatmentPlan.SessionSummary,
		Status:         domain.PlanPending,
		Suggestions:    toSuggestions(s.seed.TreatmentPlan.Suggestions),
	}
	if err := s.store.AppendTreatmentPlan(ctx, tp); err != nil {
		return fmt.Errorf("seed treatment plan: %w", err)
	}

	up := &domain.UserPlan{
		ID:              domain.UserPlanID(s.seed.UserPlan.ID),
		TreatmentPlanID: domain.TreatmentPlanID(s.seed.UserPlan.TreatmentPlanID),
		PatientID:       domain.DemoPatientID,
		PatientName:     s.seed.UserPlan.PatientName,
		StartDate:       now.AddDate(0, 0, -s.seed.UserPlan.StartDaysAgo),
		NextSession:     now.AddDate(0, 0, s.seed.UserPlan.NextSessionInDays),
		Suggestions:     toSuggestions(s.seed.UserPlan.Suggestions),
	}
	if err := s.store.AppendUserPlan(ctx, up); err != nil {
		return fmt.Errorf("seed user plan: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("demo data seeded",
		"treatment_plan_id", tp.ID,
		"user_plan_id", up.ID)
	return nil
}

// Reset clears every collection, seeds again and returns the resulting counts.
func (s *Seeder) Reset(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return Counts{}, fmt.Errorf("clear store: %w", err)
	}
	if err := s.Seed(ctx); err != nil {
		return Counts{}, err
	}
	return s.counts(ctx)
}

func (s *Seeder) counts(ctx context.Context) (Counts, error) {
	tps, err := s.store.ListTreatmentPlans(ctx)
	if err != nil {
		return Counts{}, err
	}
	ups, err := s.store.ListUserPlans(ctx)
	if err != nil {
		return Counts{}, err
	}
	logs, err := s.store.ListActivityLog(ctx, "")
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		TreatmentPlans: len(tps),
		UserPlans:      len(ups),
		ActivityLogs:   len(logs),
	}, nil
}

func toSuggestions(in []seedSuggestion) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(in))
	for _, s := range in {
		status := domain.ActivityStatus(s.Status)
		if status == "" {
			status = domain.ActivityPending
		}
		out = append(out, domain.Suggestion{
			ID:          domain.SuggestionID(s.ID),
			Type:        domain.SuggestionType(s.Type),
			Title:       s.Title,
			Description: s.Description,
			Prompt:      s.Prompt,
			Frequency:   s.Frequency,
			Status:      status,
			Notes:       s.Notes,
		})
	}
	return out
}
