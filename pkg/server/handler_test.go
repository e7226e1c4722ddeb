package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/loader"
	"github.com/Fram-Jam/healthbridge/pkg/session"
	"github.com/gorilla/mux"
)

type testAdapter struct {
	id        string
	category  models.DataCategory
	available bool
	subjects  []models.Subject
	health    []*models.DailyRecord
	labs      []models.LabRecord
}

func (a *testAdapter) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{ID: a.id, Name: a.id, Category: a.category}
}

func (a *testAdapter) IsAvailable() bool { return a.available }

func (a *testAdapter) ListSubjects() []models.Subject { return a.subjects }

func (a *testAdapter) LoadHealthData(subjectID string) []*models.DailyRecord { return a.health }

func (a *testAdapter) LoadLabData(subjectID string) []models.LabRecord { return a.labs }

func newTestServer(t *testing.T) (*mux.Router, session.Store) {
	t.Helper()

	rec := models.EmptyRecord(time.Date(2016, 4, 12, 0, 0, 0, 0, time.UTC))
	rec.Steps = models.Int(9000)

	wearable := &testAdapter{
		id:        "wearable",
		category:  models.CategoryWearables,
		available: true,
		subjects:  []models.Subject{{ID: "alpha"}, {ID: "beta"}},
		health:    []*models.DailyRecord{rec},
		labs:      []models.LabRecord{{Name: "glucose", Value: 90}},
	}
	offline := &testAdapter{id: "offline", category: models.CategoryClinical}

	registry := datasets.NewRegistry("data")
	registry.MustRegister(func(dataDir string) datasets.Adapter { return wearable })
	registry.MustRegister(func(dataDir string) datasets.Adapter { return offline })

	store := session.NewMemoryStore()
	ldr := loader.New(registry, store).WithSyntheticSeed(1)

	router := mux.NewRouter()
	NewHandler(registry, ldr, store).Register(router)
	return router, store
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	payload := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &payload)
	return w, payload
}

func TestListDatasets(t *testing.T) {
	router, _ := newTestServer(t)

	w, payload := doJSON(t, router, http.MethodGet, "/datasets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if items := payload["items"].([]interface{}); len(items) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(items))
	}

	_, payload = doJSON(t, router, http.MethodGet, "/datasets?available=true", "")
	if items := payload["items"].([]interface{}); len(items) != 1 {
		t.Fatalf("expected 1 available dataset, got %d", len(items))
	}

	_, payload = doJSON(t, router, http.MethodGet, "/datasets?category=clinical", "")
	if items := payload["items"].([]interface{}); len(items) != 1 {
		t.Fatalf("expected 1 clinical dataset, got %d", len(items))
	}

	w, _ = doJSON(t, router, http.MethodGet, "/datasets?category=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", w.Code)
	}
}

func TestGetDataset(t *testing.T) {
	router, _ := newTestServer(t)

	w, payload := doJSON(t, router, http.MethodGet, "/datasets/wearable", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if payload["available"] != true {
		t.Fatalf("expected available flag, got %v", payload["available"])
	}

	w, _ = doJSON(t, router, http.MethodGet, "/datasets/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUnsupportedCapabilityIs404(t *testing.T) {
	router, _ := newTestServer(t)

	// The test adapter implements labs but not genetics.
	w, _ := doJSON(t, router, http.MethodGet, "/datasets/wearable/subjects/alpha/labs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected labs supported, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/datasets/wearable/subjects/alpha/genetics", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unsupported capability, got %d", w.Code)
	}
	w, _ = doJSON(t, router, http.MethodGet, "/datasets/wearable/subjects/alpha/workouts", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unsupported capability, got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestServer(t)

	w, payload := doJSON(t, router, http.MethodPost, "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("expected a session id")
	}

	w, payload = doJSON(t, router, http.MethodPost, "/sessions/"+sessionID+"/load", `{"dataset_id":"wearable"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["loaded"] != true {
		t.Fatalf("expected loaded=true, got %v", payload)
	}
	state := payload["state"].(map[string]interface{})
	if state["active_dataset"] != "wearable" || state["active_subject"] != "alpha" {
		t.Fatalf("unexpected state: %v", state)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/sessions/"+sessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLoadFailureSignalsAre422(t *testing.T) {
	router, _ := newTestServer(t)

	_, payload := doJSON(t, router, http.MethodPost, "/sessions", "")
	sessionID := payload["session_id"].(string)

	w, payload := doJSON(t, router, http.MethodPost, "/sessions/"+sessionID+"/load", `{"dataset_id":"offline"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if payload["loaded"] != false || payload["reason"] == "" {
		t.Fatalf("expected failure payload, got %v", payload)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/sessions/"+sessionID+"/load", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing dataset_id, got %d", w.Code)
	}
}

func TestSwitchSubjectClearsSlots(t *testing.T) {
	router, store := newTestServer(t)

	_, payload := doJSON(t, router, http.MethodPost, "/sessions", "")
	sessionID := payload["session_id"].(string)

	doJSON(t, router, http.MethodPost, "/sessions/"+sessionID+"/load", `{"dataset_id":"wearable"}`)

	w, _ := doJSON(t, router, http.MethodPut, "/sessions/"+sessionID+"/subject", `{"subject_id":"beta"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	state, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.ActiveSubject != "beta" {
		t.Fatalf("expected subject switched, got %q", state.ActiveSubject)
	}
	if state.HealthData != nil || state.LabData != nil || state.DataLoaded {
		t.Fatalf("expected slots cleared on subject switch: %+v", state)
	}
}

func TestSwitchDatasetRequiresID(t *testing.T) {
	router, _ := newTestServer(t)

	_, payload := doJSON(t, router, http.MethodPost, "/sessions", "")
	sessionID := payload["session_id"].(string)

	w, _ := doJSON(t, router, http.MethodPut, "/sessions/"+sessionID+"/dataset", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPut, "/sessions/missing/dataset", `{"dataset_id":"wearable"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing session, got %d", w.Code)
	}
}
