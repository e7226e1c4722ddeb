// Package session holds per-session application state: the active dataset
// and subject plus every loaded data slot, behind a pluggable store.
package session

import (
	"context"
	"errors"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

// SyntheticDatasetID selects the demo path: data comes from the synthetic
// generators instead of a registered adapter.
const (
	SyntheticDatasetID   = "synthetic"
	SyntheticDatasetName = "Synthetic (Demo)"
)

var ErrNotFound = errors.New("session not found")

// State is one session's application state. Slots are nil until a load
// populates them.
type State struct {
	ActiveDataset string                   `json:"active_dataset"`
	ActiveSubject string                   `json:"active_subject,omitempty"`
	HealthData    []*models.DailyRecord    `json:"health_data,omitempty"`
	LabData       []models.LabRecord       `json:"lab_data,omitempty"`
	GeneticData   *models.GeneticProfile   `json:"genetic_data,omitempty"`
	Workouts      []models.Workout         `json:"workouts,omitempty"`
	Profile       *models.SubjectProfile   `json:"profile,omitempty"`
	DataLoaded    bool                     `json:"data_loaded"`
	Settings      map[string]interface{}   `json:"settings"`
}

func NewState() *State {
	return &State{
		ActiveDataset: SyntheticDatasetID,
		Settings:      DefaultSettings(),
	}
}

func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"weight_unit":        "kg",
		"height_unit":        "cm",
		"temp_unit":          "celsius",
		"date_format":        "YYYY-MM-DD",
		"time_format":        "12h",
		"default_time_range": 30,
		"show_targets":       true,
		"show_averages":      true,
	}
}

// ClearData empties every data slot and drops the loaded flag. Called on
// dataset or subject switches and at the start of every orchestrated load so
// no slot carries a previous subject's data.
func (s *State) ClearData() {
	s.HealthData = nil
	s.LabData = nil
	s.GeneticData = nil
	s.Workouts = nil
	s.Profile = nil
	s.DataLoaded = false
}

// SetActiveDataset switches datasets and clears all data slots. Hard
// invariant: switching never leaves stale data behind.
func (s *State) SetActiveDataset(datasetID string) {
	s.ActiveDataset = datasetID
	s.ActiveSubject = ""
	s.ClearData()
}

// SetActiveSubject switches subjects within the dataset and clears all data
// slots.
func (s *State) SetActiveSubject(subjectID string) {
	s.ActiveSubject = subjectID
	s.ClearData()
}

func (s *State) IsSyntheticMode() bool {
	return s.ActiveDataset == SyntheticDatasetID
}

// Store persists session state keyed by session id.
type Store interface {
	// Get returns the session's state or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*State, error)
	// Save writes the session's state.
	Save(ctx context.Context, sessionID string, state *State) error
	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error
}
