package llm

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/PabloGalante/farum-care/internal/domain"
)

// MockGenerator returns a fixed placeholder draft. It stands in for the real
// transcript analysis in local mode and in tests.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) GenerateTreatmentPlan(ctx context.Context, transcript, patientName string) (domain.PlanDraft, error) {
	return domain.PlanDraft{
		SessionSummary: fmt.Sprintf(
			"Session with %s (transcript of %d characters). AI-generated summary will appear here once transcript analysis is enabled.",
			patientName, utf8.RuneCountInString(transcript),
		),
		Suggestions: []domain.Suggestion{
			{
				Type:        domain.SuggestionCustom,
				Title:       "Reflect on today's session",
				Description: "Take a few minutes to write down what stood out to you from our conversation.",
				Prompt:      "What is one thing from today's session you want to remember this week?",
				Frequency:   "Once, within 2 days",
				Status:      domain.ActivityPending,
			},
		},
	}, nil
}
