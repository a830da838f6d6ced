package notify

import (
	"context"
	"log/slog"

	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

// DemoScheduledCount is what the stub reports for every schedule call:
// one reminder per day of the week.
const DemoScheduledCount = 7

// LogNotifier records notifications in the log instead of delivering them.
// It is the placeholder for an SMS provider integration.
type LogNotifier struct {
	logger func(ctx context.Context) *slog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: observability.LoggerFromContext}
}

func (n *LogNotifier) SendNotification(ctx context.Context, msg domain.Notification) error {
	n.logger(ctx).Info("notification sent (stub)",
		"patient_id", msg.PatientID,
		"suggestion_id", msg.SuggestionID,
		"message_len", len(msg.Message),
	)
	return nil
}

func (n *LogNotifier) ScheduleNotifications(ctx context.Context, planID domain.UserPlanID) (int, error) {
	n.logger(ctx).Info("notifications scheduled (stub)",
		"plan_id", planID,
		"count", DemoScheduledCount,
	)
	return DemoScheduledCount, nil
}
