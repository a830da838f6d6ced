package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/farum-care/internal/app/demo"
	"github.com/PabloGalante/farum-care/internal/app/notifications"
	"github.com/PabloGalante/farum-care/internal/app/treatmentplan"
	"github.com/PabloGalante/farum-care/internal/app/userplan"
	"github.com/PabloGalante/farum-care/internal/domain"
	"github.com/PabloGalante/farum-care/internal/observability"
)

const maxBodyBytes = 1 << 20

// Services groups the application services the API exposes.
type Services struct {
	TreatmentPlans *treatmentplan.Service
	UserPlans      *userplan.Service
	Notifications  *notifications.Service
	Seeder         *demo.Seeder
}

type Options struct {
	// AllowedOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	AllowedOrigin string
}

type Server struct {
	svc Services
	now func() time.Time
}

func NewServer(svc Services, opts Options) http.Handler {
	s := &Server{svc: svc, now: time.Now}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /api/treatment-plan/pending", s.handlePendingPlan)
	mux.HandleFunc("POST /api/treatment-plan/approve", s.handleApprovePlan)
	mux.HandleFunc("POST /api/treatment-plan/revise", s.handleRevisePlan)
	mux.HandleFunc("POST /api/treatment-plan/parse-transcript", s.handleParseTranscript)

	mux.HandleFunc("GET /api/user-plan/current", s.handleCurrentPlan)
	mux.HandleFunc("POST /api/user-plan/update-activity", s.handleUpdateActivity)
	mux.HandleFunc("GET /api/user-plan/summary", s.handleWeekSummary)
	mux.HandleFunc("GET /api/user-plan/activity-log", s.handleActivityLog)

	mux.HandleFunc("POST /api/demo/reset", s.handleDemoReset)

	mux.HandleFunc("POST /api/notifications/send", s.handleSendNotification)
	mux.HandleFunc("POST /api/notifications/schedule", s.handleScheduleNotifications)

	origin := opts.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return chainMiddlewares(mux,
		withLogging,
		withRequestID,
		withCORS(origin),
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type approveRequest struct {
	PlanID      string              `json:"planId"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type approveResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	UserPlanID string    `json:"userPlanId"`
	Timestamp  time.Time `json:"timestamp"`
}

type reviseRequest struct {
	PlanID string `json:"planId"`
}

type parseTranscriptRequest struct {
	Transcript  string `json:"transcript"`
	PatientName string `json:"patientName"`
}

type parseTranscriptResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	PlanID    string    `json:"planId"`
	Timestamp time.Time `json:"timestamp"`
}

type updateActivityRequest struct {
	PlanID       string  `json:"planId"`
	SuggestionID string  `json:"suggestionId"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

type resetResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      demo.Counts `json:"data"`
}

type sendNotificationRequest struct {
	PatientID    string `json:"patientId"`
	Message      string `json:"message"`
	SuggestionID string `json:"suggestionId"`
}

type scheduleNotificationsRequest struct {
	PlanID string `json:"planId"`
}

type scheduleNotificationsResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ScheduledCount int    `json:"scheduledCount"`
}

type statusResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type summaryEnvelope struct {
	Summary *string `json:"summary"`
}

// ─────────────────────────────────────────────
// Treatment plan handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePendingPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.svc.TreatmentPlans.GetPendingPlan(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	// A nil plan encodes as JSON null.
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleApprovePlan(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PlanID == "" {
		badRequest(w, "planId is required")
		return
	}

	userPlanID, err := s.svc.TreatmentPlans.Approve(r.Context(), domain.TreatmentPlanID(req.PlanID), req.Suggestions)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, approveResponse{
		Success:    true,
		Message:    "Treatment plan approved and shared with patient",
		UserPlanID: string(userPlanID),
		Timestamp:  s.now(),
	})
}

func (s *Server) handleRevisePlan(w http.ResponseWriter, r *http.Request) {
	var req reviseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PlanID == "" {
		badRequest(w, "planId is required")
		return
	}

	if err := s.svc.TreatmentPlans.RequestRevision(r.Context(), domain.TreatmentPlanID(req.PlanID)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success:   true,
		Message:   "Revision requested. A new plan will be generated from the session transcript.",
		Timestamp: s.now(),
	})
}

func (s *Server) handleParseTranscript(w http.ResponseWriter, r *http.Request) {
	var req parseTranscriptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	planID, err := s.svc.TreatmentPlans.CreateFromTranscript(r.Context(), treatmentplan.CreateFromTranscriptInput{
		Transcript:  req.Transcript,
		PatientName: req.PatientName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, parseTranscriptResponse{
		Success:   true,
		Message:   "Transcript processed. Treatment plan ready for review.",
		PlanID:    string(planID),
		Timestamp: s.now(),
	})
}

// ─────────────────────────────────────────────
// User plan handlers
// ─────────────────────────────────────────────

func (s *Server) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.svc.UserPlans.GetCurrentPlan(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PlanID == "" || req.SuggestionID == "" {
		badRequest(w, "planId and suggestionId are required")
		return
	}

	_, err := s.svc.UserPlans.UpdateActivity(r.Context(), userplan.UpdateActivityInput{
		PlanID:       domain.UserPlanID(req.PlanID),
		SuggestionID: domain.SuggestionID(req.SuggestionID),
		Status:       domain.ActivityStatus(strings.TrimSpace(req.Status)),
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success:   true,
		Message:   "Activity updated",
		Timestamp: s.now(),
	})
}

func (s *Server) handleWeekSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.UserPlans.GetWeekSummary(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if summary == nil {
		writeJSON(w, http.StatusOK, summaryEnvelope{})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleActivityLog(w http.ResponseWriter, r *http.Request) {
	planID := domain.UserPlanID(r.URL.Query().Get("planId"))

	entries, err := s.svc.UserPlans.ActivityLog(r.Context(), planID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ─────────────────────────────────────────────
// Demo & notification handlers
// ─────────────────────────────────────────────

func (s *Server) handleDemoReset(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Seeder.Reset(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{
		Success:   true,
		Message:   "Demo data reset to initial state",
		Timestamp: s.now(),
		Data:      counts,
	})
}

func (s *Server) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sentAt, err := s.svc.Notifications.Send(r.Context(), notifications.SendInput{
		PatientID:    domain.PatientID(req.PatientID),
		Message:      req.Message,
		SuggestionID: domain.SuggestionID(req.SuggestionID),
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success:   true,
		Message:   "Notification sent",
		Timestamp: sentAt,
	})
}

func (s *Server) handleScheduleNotifications(w http.ResponseWriter, r *http.Request) {
	var req scheduleNotificationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	count, err := s.svc.Notifications.Schedule(r.Context(), domain.UserPlanID(req.PlanID))
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scheduleNotificationsResponse{
		Success:        true,
		Message:        "Notifications scheduled",
		ScheduledCount: count,
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func failure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failureResponse{Success: false, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	failure(w, http.StatusBadRequest, msg)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		failure(w, http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, domain.ErrInvalidStatus):
		badRequest(w, capitalize(err.Error()))
	default:
		internalError(w, r, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed",
		"path", r.URL.Path,
		"error", err)
	failure(w, http.StatusInternalServerError, "internal server error")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
