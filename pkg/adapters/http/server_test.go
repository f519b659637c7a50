package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observability"
	"github.com/aretw0/cadence/pkg/schedule"
	"github.com/aretw0/cadence/pkg/session"
	"github.com/aretw0/cadence/pkg/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend() *memory.Backend {
	b := memory.NewBackend()
	b.PutObject(domain.ObjectInfo{
		APIName:     domain.ObjectServiceSession,
		Label:       "Session",
		LabelPlural: "Sessions",
		Fields: map[string]domain.FieldInfo{
			domain.FieldServiceSchedule: {RelationshipName: "ServiceSchedule__r"},
		},
	})
	b.PutObject(domain.ObjectInfo{
		APIName: domain.ObjectServiceSchedule,
		Fields: map[string]domain.FieldInfo{
			domain.FieldService: {RelationshipName: "Service__r"},
		},
	})
	b.PutSessions(domain.DateLiteralThisWeek, domain.Snapshot{
		{Key: "2026-10-12", Records: []domain.Record{{
			"Id":                 "a1",
			domain.FieldStatus:   domain.StatusComplete,
			"ServiceSchedule__r": domain.Record{"Service__r": domain.Record{"Name": "Tutoring"}},
		}}},
	})
	return b
}

type fixture struct {
	handler http.Handler
	backend *memory.Backend
	metrics *observability.Metrics
}

func setup(t *testing.T) fixture {
	t.Helper()
	backend := newBackend()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	handler := NewHandler(
		sessions.NewView(sessions.WithSources(backend, backend)),
		memory.NewLoader(schedule.Definitions(schedule.DefaultLabels())...),
		session.NewManager(memory.NewStore()),
		WithHooks(observability.Hooks(metrics, nil)),
		WithMetrics(reg),
	)
	return fixture{handler: handler, backend: backend, metrics: metrics}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeWizard(t *testing.T, w *httptest.ResponseRecorder) WizardResponse {
	t.Helper()
	var resp WizardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthAndInfo(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "GET", "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, f.handler, "GET", "/info")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cadence-http")
}

func TestGetSessions(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "GET", "/sessions")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String(), "nothing before the first refresh")

	w = do(t, f.handler, "GET", "/sessions?refresh=true")
	require.Equal(t, http.StatusOK, w.Code)

	var buckets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-10-12", buckets[0]["key"])
	assert.Equal(t, "1 Session", buckets[0]["total_label"])

	records := buckets[0]["records"].([]any)
	first := records[0].(map[string]any)
	assert.Equal(t, true, first["complete"])
	assert.Equal(t, "Tutoring", first["service_name"])
	assert.Equal(t, "a1", first["fields"].(map[string]any)["Id"])
}

func TestGetSessions_RefreshError(t *testing.T) {
	handler := NewHandler(
		sessions.NewView(),
		memory.NewLoader(schedule.Definitions(schedule.DefaultLabels())...),
		session.NewManager(memory.NewStore()),
	)

	w := do(t, handler, "GET", "/sessions?refresh=true")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWizardFlow(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "POST", "/wizard/sessions")
	require.Equal(t, http.StatusCreated, w.Code)
	start := decodeWizard(t, w)
	require.NotEmpty(t, start.SessionID)
	assert.Equal(t, 0, start.Step.Index)
	assert.True(t, start.IsFirst)
	assert.Len(t, start.Steps, 4)

	base := "/wizard/sessions/" + start.SessionID

	w = do(t, f.handler, "POST", base+"/back")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeWizard(t, w).Step.Index, "back clamps on the first step")

	for i := 0; i < 5; i++ {
		w = do(t, f.handler, "POST", base+"/next")
		require.Equal(t, http.StatusOK, w.Code)
	}
	last := decodeWizard(t, w)
	assert.Equal(t, 3, last.Step.Index)
	assert.True(t, last.IsLast)
	assert.Equal(t, "Save", last.Step.Nav.FinishLabel)

	w = do(t, f.handler, "GET", base)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeWizard(t, w).Step.Index)

	w = do(t, f.handler, "POST", base+"/restart")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeWizard(t, w).Step.Index)

	w = do(t, f.handler, "DELETE", base)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, f.handler, "GET", base)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardErrors(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "POST", "/wizard/sessions/unknown/next")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, f.handler, "GET", "/wizard/sessions/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code, "stepping must not start the session")

	w = do(t, f.handler, "POST", "/wizard/sessions")
	id := decodeWizard(t, w).SessionID

	w = do(t, f.handler, "POST", "/wizard/sessions/"+id+"/jump")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSteps(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "GET", "/wizard/steps")
	require.Equal(t, http.StatusOK, w.Code)

	var defs []domain.StepDefinition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	require.Len(t, defs, 4)
	assert.Equal(t, "review-schedule", defs[3].ID)
}

func TestMetrics(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "POST", "/wizard/sessions")
	id := decodeWizard(t, w).SessionID
	do(t, f.handler, "POST", "/wizard/sessions/"+id+"/next")
	do(t, f.handler, "GET", "/sessions?refresh=true")

	w = do(t, f.handler, "GET", "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "cadence_wizard_transitions_total")
	assert.Contains(t, body, `step="Review Sessions"`)
}

func TestCORSPreflight(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "OPTIONS", "/wizard/sessions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	f := setup(t)

	w := do(t, f.handler, "POST", "/wizard/sessions")
	id := decodeWizard(t, w).SessionID

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/wizard/sessions/"+id+"/events", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // let the subscription register

	w = do(t, f.handler, "POST", "/wizard/sessions/"+id+"/next")
	require.Equal(t, http.StatusOK, w.Code)

	cancel()
	<-done

	output := wSub.Body.String()
	assert.True(t, strings.Contains(output, "event: ping"), "expected initial ping")
	assert.Contains(t, output, "event: step")
	assert.Contains(t, output, `"label":"Review Sessions"`)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	defer cancel()

	for i := 0; i < 20; i++ {
		sm.Broadcast("s", "msg")
	}
	assert.Len(t, ch, 10)

	sm.Broadcast("nobody", "msg")
}
