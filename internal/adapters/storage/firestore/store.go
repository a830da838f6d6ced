package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-care/internal/domain"
)

const (
	treatmentPlansCollection = "treatment_plans"
	userPlansCollection      = "user_plans"
	activityLogCollection    = "activity_log"
)

// Store implements domain.Store on Firestore. Append order is kept in a
// "seq" field since document ids carry no ordering.
type Store struct {
	client *firestore.Client
	now    func() time.Time
}

var _ domain.Store = (*Store)(nil)

// NewStore creates a Firestore store.
// Uses the project passed (FARUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) col(name string) *firestore.CollectionRef {
	return s.client.Collection(name)
}

func (s *Store) seq() int64 {
	return s.now().UnixNano()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type suggestionDoc struct {
	ID          string `firestore:"id"`
	Type        string `firestore:"type"`
	Title       string `firestore:"title"`
	Description string `firestore:"description"`
	Prompt      string `firestore:"prompt"`
	Frequency   string `firestore:"frequency"`
	Status      string `firestore:"status"`
	Notes       string `firestore:"notes"`
}

type treatmentPlanDoc struct {
	Seq                 int64           `firestore:"seq"`
	PatientName         string          `firestore:"patient_name"`
	SessionDate         time.Time       `firestore:"session_date"`
	SessionSummary      string          `firestore:"session_summary"`
	Status              string          `firestore:"status"`
	ApprovedAt          *time.Time      `firestore:"approved_at"`
	RevisionRequestedAt *time.Time      `firestore:"revision_requested_at"`
	Suggestions         []suggestionDoc `firestore:"suggestions"`
}

type userPlanDoc struct {
	Seq             int64           `firestore:"seq"`
	TreatmentPlanID string          `firestore:"treatment_plan_id"`
	PatientID       string          `firestore:"patient_id"`
	PatientName     string          `firestore:"patient_name"`
	StartDate       time.Time       `firestore:"start_date"`
	NextSession     time.Time       `firestore:"next_session"`
	Suggestions     []suggestionDoc `firestore:"suggestions"`
}

type activityLogDoc struct {
	Seq          int64     `firestore:"seq"`
	PlanID       string    `firestore:"plan_id"`
	SuggestionID string    `firestore:"suggestion_id"`
	Status       string    `firestore:"status"`
	Notes        string    `firestore:"notes"`
	Timestamp    time.Time `firestore:"timestamp"`
}

func toSuggestionDocs(in []domain.Suggestion) []suggestionDoc {
	out := make([]suggestionDoc, 0, len(in))
	for _, s := range in {
		out = append(out, suggestionDoc{
			ID:          string(s.ID),
			Type:        string(s.Type),
			Title:       s.Title,
			Description: s.Description,
			Prompt:      s.Prompt,
			Frequency:   s.Frequency,
			Status:      string(s.Status),
			Notes:       s.Notes,
		})
	}
	return out
}

func fromSuggestionDocs(in []suggestionDoc) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(in))
	for _, d := range in {
		out = append(out, domain.Suggestion{
			ID:          domain.SuggestionID(d.ID),
			Type:        domain.SuggestionType(d.Type),
			Title:       d.Title,
			Description: d.Description,
			Prompt:      d.Prompt,
			Frequency:   d.Frequency,
			Status:      domain.ActivityStatus(d.Status),
			Notes:       d.Notes,
		})
	}
	return out
}

func treatmentPlanFromSnap(snap *firestore.DocumentSnapshot) (*domain.TreatmentPlan, error) {
	var doc treatmentPlanDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode treatmentPlanDoc: %w", err)
	}
	return &domain.TreatmentPlan{
		ID:                  domain.TreatmentPlanID(snap.Ref.ID),
		PatientName:         doc.PatientName,
		SessionDate:         doc.SessionDate,
		SessionSummary:      doc.SessionSummary,
		Status:              domain.PlanStatus(doc.Status),
		ApprovedAt:          doc.ApprovedAt,
		RevisionRequestedAt: doc.RevisionRequestedAt,
		Suggestions:         fromSuggestionDocs(doc.Suggestions),
	}, nil
}

func userPlanFromSnap(snap *firestore.DocumentSnapshot) (*domain.UserPlan, error) {
	var doc userPlanDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode userPlanDoc: %w", err)
	}
	return &domain.UserPlan{
		ID:              domain.UserPlanID(snap.Ref.ID),
		TreatmentPlanID: domain.TreatmentPlanID(doc.TreatmentPlanID),
		PatientID:       domain.PatientID(doc.PatientID),
		PatientName:     doc.PatientName,
		StartDate:       doc.StartDate,
		NextSession:     doc.NextSession,
		Suggestions:     fromSuggestionDocs(doc.Suggestions),
	}, nil
}

// collect drains iter, decoding each snapshot with decode.
func collect[T any](iter *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer iter.Stop()

	var out []T
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, err
		}
		v, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ─────────────────────────────────────────
// TreatmentPlanStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendTreatmentPlan(ctx context.Context, plan *domain.TreatmentPlan) error {
	doc := treatmentPlanDoc{
		Seq:                 s.seq(),
		PatientName:         plan.PatientName,
		SessionDate:         plan.SessionDate,
		SessionSummary:      plan.SessionSummary,
		Status:              string(plan.Status),
		ApprovedAt:          plan.ApprovedAt,
		RevisionRequestedAt: plan.RevisionRequestedAt,
		Suggestions:         toSuggestionDocs(plan.Suggestions),
	}

	if _, err := s.col(treatmentPlansCollection).Doc(string(plan.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendTreatmentPlan: %w", err)
	}
	return nil
}

func (s *Store) UpdateTreatmentPlan(ctx context.Context, plan *domain.TreatmentPlan) error {
	ref := s.col(treatmentPlansCollection).Doc(string(plan.ID))
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return domain.ErrTreatmentPlanNotFound
		}
		return fmt.Errorf("firestore UpdateTreatmentPlan: %w", err)
	}

	// seq is left untouched so the plan keeps its position.
	doc := map[string]interface{}{
		"patient_name":          plan.PatientName,
		"session_date":          plan.SessionDate,
		"session_summary":       plan.SessionSummary,
		"status":                string(plan.Status),
		"approved_at":           plan.ApprovedAt,
		"revision_requested_at": plan.RevisionRequestedAt,
		"suggestions":           toSuggestionDocs(plan.Suggestions),
	}

	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore UpdateTreatmentPlan: %w", err)
	}
	return nil
}

func (s *Store) GetTreatmentPlan(ctx context.Context, id domain.TreatmentPlanID) (*domain.TreatmentPlan, error) {
	snap, err := s.col(treatmentPlansCollection).Doc(string(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrTreatmentPlanNotFound
		}
		return nil, fmt.Errorf("firestore GetTreatmentPlan: %w", err)
	}
	return treatmentPlanFromSnap(snap)
}

func (s *Store) FirstPendingTreatmentPlan(ctx context.Context) (*domain.TreatmentPlan, error) {
	q := s.col(treatmentPlansCollection).
		Where("status", "==", string(domain.PlanPending)).
		OrderBy("seq", firestore.Asc).
		Limit(1)

	plans, err := collect(q.Documents(ctx), treatmentPlanFromSnap)
	if err != nil {
		return nil, fmt.Errorf("firestore FirstPendingTreatmentPlan: %w", err)
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return plans[0], nil
}

func (s *Store) ListTreatmentPlans(ctx context.Context) ([]*domain.TreatmentPlan, error) {
	q := s.col(treatmentPlansCollection).OrderBy("seq", firestore.Asc)

	plans, err := collect(q.Documents(ctx), treatmentPlanFromSnap)
	if err != nil {
		return nil, fmt.Errorf("firestore ListTreatmentPlans: %w", err)
	}
	return plans, nil
}

// ─────────────────────────────────────────
// UserPlanStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendUserPlan(ctx context.Context, plan *domain.UserPlan) error {
	doc := userPlanDoc{
		Seq:             s.seq(),
		TreatmentPlanID: string(plan.TreatmentPlanID),
		PatientID:       string(plan.PatientID),
		PatientName:     plan.PatientName,
		StartDate:       plan.StartDate,
		NextSession:     plan.NextSession,
		Suggestions:     toSuggestionDocs(plan.Suggestions),
	}

	if _, err := s.col(userPlansCollection).Doc(string(plan.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendUserPlan: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserPlan(ctx context.Context, plan *domain.UserPlan) error {
	ref := s.col(userPlansCollection).Doc(string(plan.ID))
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return domain.ErrUserPlanNotFound
		}
		return fmt.Errorf("firestore UpdateUserPlan: %w", err)
	}

	doc := map[string]interface{}{
		"treatment_plan_id": string(plan.TreatmentPlanID),
		"patient_id":        string(plan.PatientID),
		"patient_name":      plan.PatientName,
		"start_date":        plan.StartDate,
		"next_session":      plan.NextSession,
		"suggestions":       toSuggestionDocs(plan.Suggestions),
	}

	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore UpdateUserPlan: %w", err)
	}
	return nil
}

func (s *Store) GetUserPlan(ctx context.Context, id domain.UserPlanID) (*domain.UserPlan, error) {
	snap, err := s.col(userPlansCollection).Doc(string(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserPlanNotFound
		}
		return nil, fmt.Errorf("firestore GetUserPlan: %w", err)
	}
	return userPlanFromSnap(snap)
}

func (s *Store) LatestUserPlan(ctx context.Context) (*domain.UserPlan, error) {
	q := s.col(userPlansCollection).OrderBy("seq", firestore.Desc).Limit(1)

	plans, err := collect(q.Documents(ctx), userPlanFromSnap)
	if err != nil {
		return nil, fmt.Errorf("firestore LatestUserPlan: %w", err)
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return plans[0], nil
}

func (s *Store) ListUserPlans(ctx context.Context) ([]*domain.UserPlan, error) {
	q := s.col(userPlansCollection).OrderBy("seq", firestore.Asc)

	plans, err := collect(q.Documents(ctx), userPlanFromSnap)
	if err != nil {
		return nil, fmt.Errorf("firestore ListUserPlans: %w", err)
	}
	return plans, nil
}

// ─────────────────────────────────────────
// ActivityLogStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendActivityLog(ctx context.Context, entry *domain.ActivityLogEntry) error {
	doc := activityLogDoc{
		Seq:          s.seq(),
		PlanID:       string(entry.PlanID),
		SuggestionID: string(entry.SuggestionID),
		Status:       string(entry.Status),
		Notes:        entry.Notes,
		Timestamp:    entry.Timestamp,
	}

	if _, err := s.col(activityLogCollection).Doc(string(entry.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendActivityLog: %w", err)
	}
	return nil
}

func (s *Store) ListActivityLog(ctx context.Context, planID domain.UserPlanID) ([]*domain.ActivityLogEntry, error) {
	q := s.col(activityLogCollection).Query
	if planID != "" {
		q = q.Where("plan_id", "==", string(planID))
	}
	q = q.OrderBy("seq", firestore.Asc)

	entries, err := collect(q.Documents(ctx), func(snap *firestore.DocumentSnapshot) (*domain.ActivityLogEntry, error) {
		var doc activityLogDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode activityLogDoc: %w", err)
		}
		return &domain.ActivityLogEntry{
			ID:           domain.ActivityLogID(snap.Ref.ID),
			PlanID:       domain.UserPlanID(doc.PlanID),
			SuggestionID: domain.SuggestionID(doc.SuggestionID),
			Status:       domain.ActivityStatus(doc.Status),
			Notes:        doc.Notes,
			Timestamp:    doc.Timestamp,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("firestore ListActivityLog: %w", err)
	}
	return entries, nil
}

// Clear deletes every document in the three collections.
func (s *Store) Clear(ctx context.Context) error {
	bw := s.client.BulkWriter(ctx)
	for _, name := range []string{treatmentPlansCollection, userPlansCollection, activityLogCollection} {
		refs, err := s.col(name).DocumentRefs(ctx).GetAll()
		if err != nil {
			bw.End()
			return fmt.Errorf("firestore Clear %s: %w", name, err)
		}
		for _, ref := range refs {
			if _, err := bw.Delete(ref); err != nil {
				bw.End()
				return fmt.Errorf("firestore Clear %s: %w", name, err)
			}
		}
	}
	bw.End()
	return nil
}
