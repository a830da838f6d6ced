package domain

import "time"

type TreatmentPlanID string
type UserPlanID string
type SuggestionID string
type ActivityLogID string
type PatientID string

// DemoPatientID is the single implicit patient every user plan belongs to.
const DemoPatientID PatientID = "user-123"

type SuggestionType string

const (
	SuggestionJournaling SuggestionType = "journaling"
	SuggestionExercise   SuggestionType = "exercise"
	SuggestionBreathing  SuggestionType = "breathing"
	SuggestionCustom     SuggestionType = "custom"
)

type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivitySkipped    ActivityStatus = "skipped" // rendered by the patient UI
)

// Valid reports whether s is one of the statuses the tracker accepts.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityCompleted, ActivitySkipped:
		return true
	}
	return false
}

type PlanStatus string

const (
	PlanPending       PlanStatus = "pending"
	PlanApproved      PlanStatus = "approved"
	PlanNeedsRevision PlanStatus = "needs_revision"
)

type Timestamp = time.Time
