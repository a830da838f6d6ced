package domain

// Suggestion is one activity recommendation shown to the patient.
type Suggestion struct {
	ID          SuggestionID   `json:"id"`
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Prompt      string         `json:"prompt"`
	Frequency   string         `json:"frequency"`
	Status      ActivityStatus `json:"status"`
	Notes       string         `json:"notes"`
}

// TreatmentPlan is the therapist-facing draft awaiting review.
type TreatmentPlan struct {
	ID             TreatmentPlanID `json:"id"`
	PatientName    string          `json:"patientName"`
	SessionDate    Timestamp       `json:"sessionDate"`
	SessionSummary string          `json:"sessionSummary"`
	Status         PlanStatus      `json:"status"`

	// Only set after the corresponding transition.
	ApprovedAt          *Timestamp `json:"approvedAt,omitempty"`
	RevisionRequestedAt *Timestamp `json:"revisionRequestedAt,omitempty"`

	Suggestions []Suggestion `json:"suggestions"`
}

// UserPlan is the patient-facing plan created when a treatment plan is approved.
type UserPlan struct {
	ID              UserPlanID      `json:"id"`
	TreatmentPlanID TreatmentPlanID `json:"treatmentPlanId,omitempty"`
	PatientID       PatientID       `json:"patientId"`
	PatientName     string          `json:"patientName"`
	StartDate       Timestamp       `json:"startDate"`
	NextSession     Timestamp       `json:"nextSession"`
	Suggestions     []Suggestion    `json:"suggestions"`
}

// FindSuggestion returns a pointer into p.Suggestions so callers can mutate in place.
func (p *UserPlan) FindSuggestion(id SuggestionID) *Suggestion {
	for i := range p.Suggestions {
		if p.Suggestions[i].ID == id {
			return &p.Suggestions[i]
		}
	}
	return nil
}

// ActivityLogEntry is an append-only record of one activity update.
type ActivityLogEntry struct {
	ID           ActivityLogID  `json:"id"`
	PlanID       UserPlanID     `json:"planId"`
	SuggestionID SuggestionID   `json:"suggestionId"`
	Status       ActivityStatus `json:"status"`
	Notes        string         `json:"notes"`
	Timestamp    Timestamp      `json:"timestamp"`
}

// WeekSummary is the descriptive aggregation over the current user plan.
type WeekSummary struct {
	WeekNumber          int       `json:"weekNumber"`
	CompletionRate      int       `json:"completionRate"`
	CompletedActivities int       `json:"completedActivities"`
	TotalActivities     int       `json:"totalActivities"`
	Summary             string    `json:"summary"`
	Highlights          []string  `json:"highlights"`
	GeneratedAt         Timestamp `json:"generatedAt"`
}

// CloneSuggestions returns an independent copy of s. A nil input yields an empty slice.
func CloneSuggestions(s []Suggestion) []Suggestion {
	out := make([]Suggestion, len(s))
	copy(out, s)
	return out
}

func (p *TreatmentPlan) Clone() *TreatmentPlan {
	if p == nil {
		return nil
	}
	c := *p
	if p.ApprovedAt != nil {
		t := *p.ApprovedAt
		c.ApprovedAt = &t
	}
	if p.RevisionRequestedAt != nil {
		t := *p.RevisionRequestedAt
		c.RevisionRequestedAt = &t
	}
	c.Suggestions = CloneSuggestions(p.Suggestions)
	return &c
}

func (p *UserPlan) Clone() *UserPlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Suggestions = CloneSuggestions(p.Suggestions)
	return &c
}
