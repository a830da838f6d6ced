package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-care/internal/adapters/llm"
	"github.com/PabloGalante/farum-care/internal/domain"
)

func TestBuildPromptIncludesPatientAndTranscript(t *testing.T) {
	p := llm.BuildPrompt("  I have been sleeping badly.  ", "Sarah")

	assert.Contains(t, p.System, "JSON only")
	assert.Contains(t, p.User, "Patient name: Sarah")
	assert.Contains(t, p.User, "I have been sleeping badly.")
}

func TestParseDraft(t *testing.T) {
	text := "```json\n" + `{
		"sessionSummary": "Patient discussed work stress.",
		"suggestions": [
			{"type": "Breathing", "title": "Box breathing", "description": "4-4-4-4", "frequency": "Daily"},
			{"type": "yoga", "title": "Gentle stretch"},
			{"type": "journaling", "title": ""}
		]
	}` + "\n```"

	draft, err := llm.ParseDraft(text)
	require.NoError(t, err)

	assert.Equal(t, "Patient discussed work stress.", draft.SessionSummary)
	require.Len(t, draft.Suggestions, 2)
	assert.Equal(t, domain.SuggestionBreathing, draft.Suggestions[0].Type)
	assert.Equal(t, domain.SuggestionCustom, draft.Suggestions[1].Type)
	assert.Equal(t, domain.ActivityPending, draft.Suggestions[1].Status)
}

func TestParseDraftRejectsMissingSummary(t *testing.T) {
	_, err := llm.ParseDraft(`{"suggestions": []}`)
	assert.Error(t, err)

	_, err = llm.ParseDraft(`not json`)
	assert.Error(t, err)
}

func TestMockGeneratorReturnsPlaceholder(t *testing.T) {
	draft, err := llm.NewMockGenerator().GenerateTreatmentPlan(context.Background(), "hello", "Sam")
	require.NoError(t, err)

	assert.Contains(t, draft.SessionSummary, "Sam")
	require.Len(t, draft.Suggestions, 1)
	assert.Equal(t, domain.SuggestionCustom, draft.Suggestions[0].Type)
}
