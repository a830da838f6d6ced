package firestore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-care/internal/domain"
)

func TestSuggestionDocsRoundTripKeepsOrder(t *testing.T) {
	in := []domain.Suggestion{
		{ID: "s1", Type: domain.SuggestionBreathing, Title: "Box breathing", Status: domain.ActivityCompleted, Notes: "calmer"},
		{ID: "s2", Type: domain.SuggestionJournaling, Title: "Thought record", Status: domain.ActivityPending},
	}

	out := fromSuggestionDocs(toSuggestionDocs(in))
	assert.Equal(t, in, out)
}

func TestFromSuggestionDocsNilIsEmpty(t *testing.T) {
	out := fromSuggestionDocs(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
