package domain

import "context"

// TreatmentPlanStore keeps treatment plans in append order.
type TreatmentPlanStore interface {
	AppendTreatmentPlan(ctx context.Context, plan *TreatmentPlan) error
	UpdateTreatmentPlan(ctx context.Context, plan *TreatmentPlan) error
	GetTreatmentPlan(ctx context.Context, id TreatmentPlanID) (*TreatmentPlan, error)
	// FirstPendingTreatmentPlan returns nil, nil when no plan is pending.
	FirstPendingTreatmentPlan(ctx context.Context) (*TreatmentPlan, error)
	ListTreatmentPlans(ctx context.Context) ([]*TreatmentPlan, error)
}

// UserPlanStore keeps user plans in append order.
type UserPlanStore interface {
	AppendUserPlan(ctx context.Context, plan *UserPlan) error
	UpdateUserPlan(ctx context.Context, plan *UserPlan) error
	GetUserPlan(ctx context.Context, id UserPlanID) (*UserPlan, error)
	// LatestUserPlan returns nil, nil when there are no user plans.
	LatestUserPlan(ctx context.Context) (*UserPlan, error)
	ListUserPlans(ctx context.Context) ([]*UserPlan, error)
}

// ActivityLogStore is append-only.
type ActivityLogStore interface {
	AppendActivityLog(ctx context.Context, entry *ActivityLogEntry) error
	// ListActivityLog returns every entry when planID is empty.
	ListActivityLog(ctx context.Context, planID UserPlanID) ([]*ActivityLogEntry, error)
}

// Store is the whole persistence layer. Implementations hand out copies,
// so mutating a returned entity never changes stored state without an Update call.
type Store interface {
	TreatmentPlanStore
	UserPlanStore
	ActivityLogStore
	Clear(ctx context.Context) error
}

// PlanDraft is what transcript analysis produces before the plan gets an id.
type PlanDraft struct {
	SessionSummary string
	Suggestions    []Suggestion
}

// PlanGenerator turns a session transcript into a draft treatment plan.
type PlanGenerator interface {
	GenerateTreatmentPlan(ctx context.Context, transcript, patientName string) (PlanDraft, error)
}

// Notification is a single message for a patient.
type Notification struct {
	PatientID    PatientID
	Message      string
	SuggestionID SuggestionID
}

// Notifier delivers patient reminders.
type Notifier interface {
	SendNotification(ctx context.Context, n Notification) error
	ScheduleNotifications(ctx context.Context, planID UserPlanID) (int, error)
}
