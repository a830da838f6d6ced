package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/PabloGalante/farum-care/internal/adapters/http"
	"github.com/PabloGalante/farum-care/internal/adapters/llm"
	"github.com/PabloGalante/farum-care/internal/adapters/notify"
	"github.com/PabloGalante/farum-care/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-care/internal/app/demo"
	"github.com/PabloGalante/farum-care/internal/app/notifications"
	"github.com/PabloGalante/farum-care/internal/app/treatmentplan"
	"github.com/PabloGalante/farum-care/internal/app/userplan"
	"github.com/PabloGalante/farum-care/internal/domain"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	seeder, err := demo.NewSeeder(store)
	require.NoError(t, err)
	_, err = seeder.Reset(context.Background())
	require.NoError(t, err)

	return httpadapter.NewServer(httpadapter.Services{
		TreatmentPlans: treatmentplan.NewService(store, llm.NewMockGenerator()),
		UserPlans:      userplan.NewService(store),
		Notifications:  notifications.NewService(notify.NewLogNotifier()),
		Seeder:         seeder,
	}, httpadapter.Options{})
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

type result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	UserPlanID string `json:"userPlanId"`
	PlanID     string `json:"planId"`
	Timestamp  string `json:"timestamp"`
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestApproveFlowEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/treatment-plan/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[domain.TreatmentPlan](t, w)
	require.Len(t, plan.Suggestions, 4)
	assert.Equal(t, domain.PlanPending, plan.Status)

	w = do(t, srv, http.MethodPost, "/api/treatment-plan/approve", map[string]any{
		"planId":      plan.ID,
		"suggestions": plan.Suggestions,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode[result](t, w)
	assert.True(t, approved.Success)
	require.NotEmpty(t, approved.UserPlanID)
	assert.NotEqual(t, string(plan.ID), approved.UserPlanID)
	assert.NotEmpty(t, approved.Timestamp)

	w = do(t, srv, http.MethodGet, "/api/user-plan/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	current := decode[domain.UserPlan](t, w)
	assert.Equal(t, domain.UserPlanID(approved.UserPlanID), current.ID)
	assert.Equal(t, plan.ID, current.TreatmentPlanID)
	assert.Equal(t, plan.Suggestions, current.Suggestions)

	// The only pending plan was approved.
	w = do(t, srv, http.MethodGet, "/api/treatment-plan/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(w.Body.Bytes())))
}

func TestApproveUnknownPlanReturns404(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/treatment-plan/approve", map[string]any{
		"planId":      "does-not-exist",
		"suggestions": []any{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	res := decode[result](t, w)
	assert.False(t, res.Success)
	assert.Equal(t, "Treatment plan not found", res.Message)
}

func TestReviseAndParseTranscript(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/treatment-plan/revise", map[string]string{"planId": "tp-sample-001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[result](t, w).Success)

	w = do(t, srv, http.MethodPost, "/api/treatment-plan/revise", map[string]string{"planId": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/api/treatment-plan/parse-transcript", map[string]string{
		"transcript":  "Therapist: How was your week?\nPatient: Stressful.",
		"patientName": "Sarah Johnson",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	parsed := decode[result](t, w)
	require.NotEmpty(t, parsed.PlanID)

	w = do(t, srv, http.MethodGet, "/api/treatment-plan/pending", nil)
	pending := decode[domain.TreatmentPlan](t, w)
	assert.Equal(t, domain.TreatmentPlanID(parsed.PlanID), pending.ID)
	assert.Equal(t, "Sarah Johnson", pending.PatientName)
}

func TestUpdateActivityAndSummary(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/user-plan/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[domain.WeekSummary](t, w)
	assert.Equal(t, 50, summary.CompletionRate)

	w = do(t, srv, http.MethodPost, "/api/user-plan/update-activity", map[string]any{
		"planId":       "up-sample-001",
		"suggestionId": "up-s4",
		"status":       "completed",
		"notes":        "x",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Status only: notes stay as they were.
	w = do(t, srv, http.MethodPost, "/api/user-plan/update-activity", map[string]any{
		"planId":       "up-sample-001",
		"suggestionId": "up-s3",
		"status":       "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, srv, http.MethodGet, "/api/user-plan/current", nil)
	current := decode[domain.UserPlan](t, w)
	s4 := current.FindSuggestion("up-s4")
	require.NotNil(t, s4)
	assert.Equal(t, domain.ActivityCompleted, s4.Status)
	assert.Equal(t, "x", s4.Notes)

	w = do(t, srv, http.MethodGet, "/api/user-plan/summary", nil)
	summary = decode[domain.WeekSummary](t, w)
	assert.Equal(t, 100, summary.CompletionRate)

	w = do(t, srv, http.MethodGet, "/api/user-plan/activity-log?planId=up-sample-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[[]domain.ActivityLogEntry](t, w)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.SuggestionID("up-s4"), logs[0].SuggestionID)
	assert.Equal(t, "x", logs[0].Notes)
}

func TestUpdateActivityErrors(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/user-plan/update-activity", map[string]any{
		"planId": "up-sample-001", "suggestionId": "missing", "status": "completed",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode[result](t, w).Success)

	w = do(t, srv, http.MethodPost, "/api/user-plan/update-activity", map[string]any{
		"planId": "up-sample-001", "suggestionId": "up-s1", "status": "finished",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/user-plan/update-activity", `{"planId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryWithoutPlanIsNull(t *testing.T) {
	store := memory.NewStore()
	seeder, err := demo.NewSeeder(store)
	require.NoError(t, err)

	srv := httpadapter.NewServer(httpadapter.Services{
		TreatmentPlans: treatmentplan.NewService(store, llm.NewMockGenerator()),
		UserPlans:      userplan.NewService(store),
		Notifications:  notifications.NewService(notify.NewLogNotifier()),
		Seeder:         seeder,
	}, httpadapter.Options{})

	w := do(t, srv, http.MethodGet, "/api/user-plan/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary": null}`, w.Body.String())

	w = do(t, srv, http.MethodGet, "/api/user-plan/current", nil)
	assert.Equal(t, "null", string(bytes.TrimSpace(w.Body.Bytes())))
}

func TestDemoReset(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPost, "/api/user-plan/update-activity", map[string]any{
		"planId": "up-sample-001", "suggestionId": "up-s4", "status": "completed",
	})

	w := do(t, srv, http.MethodPost, "/api/demo/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool        `json:"success"`
		Data    demo.Counts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, demo.Counts{TreatmentPlans: 1, UserPlans: 1, ActivityLogs: 0}, res.Data)
}

func TestNotifications(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/notifications/send", map[string]string{
		"patientId": "user-123", "message": "Time to journal", "suggestionId": "up-s2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sent := decode[result](t, w)
	assert.True(t, sent.Success)
	assert.NotEmpty(t, sent.Timestamp)

	w = do(t, srv, http.MethodPost, "/api/notifications/schedule", map[string]string{"planId": "up-sample-001"})
	require.Equal(t, http.StatusOK, w.Code)
	var scheduled struct {
		ScheduledCount int `json:"scheduledCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scheduled))
	assert.Equal(t, notify.DemoScheduledCount, scheduled.ScheduledCount)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodOptions, "/api/treatment-plan/approve", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWrongMethod(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/treatment-plan/approve", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
