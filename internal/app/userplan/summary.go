package userplan

import (
	"context"
	"math"

	"github.com/PabloGalante/farum-care/internal/domain"
)

// Past weeks are not kept, so every summary is for week 1.
const currentWeekNumber = 1

const weekSummaryText = "This week you made steady progress on your wellness plan. " +
	"You stayed consistent with your breathing practice and journaling, and noticed " +
	"that evening reflection helped with sleep. Keep building on the activities that " +
	"felt most helpful, and bring anything that felt difficult to your next session."

var weekHighlights = []string{
	"Practised breathing exercises consistently",
	"Used journaling to notice worry patterns",
	"Reported better sleep on journaling days",
}

// CompletionRate is the rounded percentage of completed suggestions; 0 for an empty plan.
func CompletionRate(suggestions []domain.Suggestion) (rate, completed, total int) {
	total = len(suggestions)
	for _, s := range suggestions {
		if s.Status == domain.ActivityCompleted {
			completed++
		}
	}
	if total == 0 {
		return 0, completed, total
	}
	rate = int(math.Round(100 * float64(completed) / float64(total)))
	return rate, completed, total
}

// GetWeekSummary aggregates the current plan. It returns nil when there is no plan.
func (s *Service) GetWeekSummary(ctx context.Context) (*domain.WeekSummary, error) {
	plan, err := s.GetCurrentPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}

	rate, completed, total := CompletionRate(plan.Suggestions)

	highlights := make([]string, len(weekHighlights))
	copy(highlights, weekHighlights)

	return &domain.WeekSummary{
		WeekNumber:          currentWeekNumber,
		CompletionRate:      rate,
		CompletedActivities: completed,
		TotalActivities:     total,
		Summary:             weekSummaryText,
		Highlights:          highlights,
		GeneratedAt:         s.now(),
	}, nil
}
