// Package server exposes the registry, loader, and session store over HTTP
// for dashboard frontends.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Fram-Jam/healthbridge/pkg/common/logger"
	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/loader"
	"github.com/Fram-Jam/healthbridge/pkg/session"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	registry *datasets.Registry
	loader   *loader.Loader
	store    session.Store
}

func NewHandler(registry *datasets.Registry, ldr *loader.Loader, store session.Store) *Handler {
	return &Handler{registry: registry, loader: ldr, store: store}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/datasets", h.handleListDatasets).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}", h.handleGetDataset).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects", h.handleListSubjects).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects/{subjectID}/health", h.handleHealthData).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects/{subjectID}/labs", h.handleLabData).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects/{subjectID}/genetics", h.handleGeneticData).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects/{subjectID}/workouts", h.handleWorkouts).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{id}/subjects/{subjectID}/profile", h.handleProfile).Methods(http.MethodGet)
	r.HandleFunc("/sessions", h.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", h.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/load", h.handleLoad).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/dataset", h.handleSwitchDataset).Methods(http.MethodPut)
	r.HandleFunc("/sessions/{id}/subject", h.handleSwitchSubject).Methods(http.MethodPut)
}

func (h *Handler) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	var items []models.DatasetMetadata
	switch {
	case r.URL.Query().Get("available") == "true":
		items = h.registry.ListAvailable()
	case r.URL.Query().Get("category") != "":
		category := models.DataCategory(r.URL.Query().Get("category"))
		if !category.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}
		items = h.registry.ListByCategory(category)
	default:
		items = h.registry.ListAll()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	meta := adapter.Metadata()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset":   meta,
		"available": adapter.IsAvailable(),
	})
}

func (h *Handler) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": adapter.ListSubjects()})
}

func (h *Handler) handleHealthData(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	records := adapter.LoadHealthData(mux.Vars(r)["subjectID"])
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": records})
}

func (h *Handler) handleLabData(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	records, supported := datasets.LoadLabData(adapter, mux.Vars(r)["subjectID"])
	if !supported {
		http.Error(w, "dataset does not provide lab data", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": records})
}

func (h *Handler) handleGeneticData(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	profile, supported := datasets.LoadGeneticData(adapter, mux.Vars(r)["subjectID"])
	if !supported {
		http.Error(w, "dataset does not provide genetic data", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"genetics": profile})
}

func (h *Handler) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	workouts, supported := datasets.LoadWorkouts(adapter, mux.Vars(r)["subjectID"])
	if !supported {
		http.Error(w, "dataset does not provide workouts", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": workouts})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	adapter := h.registry.Get(mux.Vars(r)["id"])
	if adapter == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	profile, supported := datasets.SubjectProfile(adapter, mux.Vars(r)["subjectID"])
	if !supported {
		http.Error(w, "dataset does not provide subject profiles", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.New().String()
	state := session.NewState()
	if err := h.store.Save(r.Context(), sessionID, state); err != nil {
		logger.Log.WithError(err).Error("failed to create session")
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sessionID,
		"state":      state,
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to read session")
		http.Error(w, "failed to read session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

type loadRequest struct {
	DatasetID string `json:"dataset_id"`
	SubjectID string `json:"subject_id,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.DatasetID == "" {
		http.Error(w, "dataset_id is required", http.StatusBadRequest)
		return
	}
	sessionID := mux.Vars(r)["id"]

	err := h.loader.Load(r.Context(), sessionID, req.DatasetID, req.SubjectID)
	switch {
	case errors.Is(err, loader.ErrUnknownDataset),
		errors.Is(err, loader.ErrDatasetUnavailable),
		errors.Is(err, loader.ErrNoSubjects):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"loaded": false,
			"reason": err.Error(),
		})
		return
	case err != nil:
		logger.Log.WithError(err).Error("failed to load session data")
		http.Error(w, "failed to load session data", http.StatusInternalServerError)
		return
	}

	state, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to read session after load")
		http.Error(w, "failed to read session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loaded": true,
		"state":  state,
	})
}

type switchRequest struct {
	DatasetID string `json:"dataset_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
}

func (h *Handler) handleSwitchDataset(w http.ResponseWriter, r *http.Request) {
	h.handleSwitch(w, r, func(state *session.State, req switchRequest) bool {
		if req.DatasetID == "" {
			return false
		}
		state.SetActiveDataset(req.DatasetID)
		return true
	})
}

func (h *Handler) handleSwitchSubject(w http.ResponseWriter, r *http.Request) {
	h.handleSwitch(w, r, func(state *session.State, req switchRequest) bool {
		state.SetActiveSubject(req.SubjectID)
		return true
	})
}

func (h *Handler) handleSwitch(w http.ResponseWriter, r *http.Request, apply func(*session.State, switchRequest) bool) {
	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	sessionID := mux.Vars(r)["id"]

	state, err := h.store.Get(r.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to read session")
		http.Error(w, "failed to read session", http.StatusInternalServerError)
		return
	}
	if !apply(state, req) {
		http.Error(w, "dataset_id is required", http.StatusBadRequest)
		return
	}
	if err := h.store.Save(r.Context(), sessionID, state); err != nil {
		logger.Log.WithError(err).Error("failed to save session")
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}
