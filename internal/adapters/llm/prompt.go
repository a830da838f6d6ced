package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-care/internal/domain"
)

const treatmentPlanSystemPrompt = `
You are a clinical assistant helping a licensed therapist turn a session transcript into a short,
patient-facing treatment plan. The therapist reviews everything you produce before the patient sees it.

Your task:
- Summarize the session in 2-4 sentences, in neutral clinical language.
- Propose 3-5 between-session activities the patient can realistically do.
- Each activity has a type: one of "journaling", "exercise", "breathing", "custom".
- Each activity has a short title, a one or two sentence description, an optional prompt
  the patient can respond to, and a frequency such as "Daily" or "3 times per week".

Boundaries:
- Do NOT diagnose. Do NOT suggest medication changes.
- If the transcript mentions self-harm or risk to others, say so plainly in the summary.
- Use the SAME LANGUAGE as the transcript.

Respond with JSON only, matching this shape:
{
  "sessionSummary": "...",
  "suggestions": [
    {"type": "journaling", "title": "...", "description": "...", "prompt": "...", "frequency": "..."}
  ]
}
`

// Prompt represents the system prompt + the content to send as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the system prompt and the user content from the transcript.
func BuildPrompt(transcript, patientName string) Prompt {
	var user strings.Builder
	user.WriteString("Patient name: ")
	user.WriteString(patientName)
	user.WriteString("\n\nSession transcript:\n")
	user.WriteString(strings.TrimSpace(transcript))

	return Prompt{
		System: treatmentPlanSystemPrompt,
		User:   user.String(),
	}
}

type draftJSON struct {
	SessionSummary string `json:"sessionSummary"`
	Suggestions    []struct {
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Prompt      string `json:"prompt"`
		Frequency   string `json:"frequency"`
	} `json:"suggestions"`
}

// ParseDraft decodes the model's JSON answer into a PlanDraft.
// Unknown activity types fall back to custom.
func ParseDraft(text string) (domain.PlanDraft, error) {
	text = strings.TrimSpace(text)
	// Models sometimes wrap JSON in a markdown fence even in JSON mode.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw draftJSON
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.PlanDraft{}, fmt.Errorf("decode plan draft: %w", err)
	}
	if strings.TrimSpace(raw.SessionSummary) == "" {
		return domain.PlanDraft{}, fmt.Errorf("plan draft has no session summary")
	}

	draft := domain.PlanDraft{SessionSummary: raw.SessionSummary}
	for _, s := range raw.Suggestions {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		draft.Suggestions = append(draft.Suggestions, domain.Suggestion{
			Type:        parseSuggestionType(s.Type),
			Title:       s.Title,
			Description: s.Description,
			Prompt:      s.Prompt,
			Frequency:   s.Frequency,
			Status:      domain.ActivityPending,
		})
	}
	return draft, nil
}

func parseSuggestionType(s string) domain.SuggestionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "journaling", "journal":
		return domain.SuggestionJournaling
	case "exercise":
		return domain.SuggestionExercise
	case "breathing", "breath":
		return domain.SuggestionBreathing
	default:
		return domain.SuggestionCustom
	}
}
