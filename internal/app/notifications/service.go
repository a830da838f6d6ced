package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

// Service sends and schedules patient reminders through a domain.Notifier.
type Service struct {
	notifier domain.Notifier
	now      func() time.Time
}

func NewService(notifier domain.Notifier) *Service {
	return &Service{
		notifier: notifier,
		now:      time.Now,
	}
}

type SendInput struct {
	PatientID    domain.PatientID
	Message      string
	SuggestionID domain.SuggestionID
}

// Send delivers one notification. An empty patient id targets the demo patient.
func (s *Service) Send(ctx context.Context, in SendInput) (time.Time, error) {
	log := observability.LoggerFromContext(ctx).With(
		"patient_id", in.PatientID,
		"suggestion_id", in.SuggestionID,
	)

	patientID := in.PatientID
	if patientID == "" {
		patientID = domain.DemoPatientID
	}

	err := s.notifier.SendNotification(ctx, domain.Notification{
		PatientID:    patientID,
		Message:      strings.TrimSpace(in.Message),
		SuggestionID: in.SuggestionID,
	})
	if err != nil {
		log.Error("failed to send notification", "error", err)
		return time.Time{}, fmt.Errorf("send notification: %w", err)
	}

	return s.now(), nil
}

// Schedule asks the notifier to plan reminders for a user plan and reports how many it scheduled.
func (s *Service) Schedule(ctx context.Context, planID domain.UserPlanID) (int, error) {
	count, err := s.notifier.ScheduleNotifications(ctx, planID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to schedule notifications",
			"plan_id", planID,
			"error", err)
		return 0, fmt.Errorf("schedule notifications: %w", err)
	}
	return count, nil
}
