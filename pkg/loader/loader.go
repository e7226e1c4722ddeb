// Package loader orchestrates session data loading: given a dataset and an
// optional subject it resolves an adapter (or the synthetic generator), pulls
// every available data kind, and populates the session state.
package loader

import (
	"context"
	"errors"

	"github.com/Fram-Jam/healthbridge/pkg/archive"
	"github.com/Fram-Jam/healthbridge/pkg/common/logger"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/session"
	"github.com/Fram-Jam/healthbridge/pkg/synthetic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Load failure signals. These are recoverable conditions the caller surfaces
// as "no data available", never stack traces.
var (
	ErrUnknownDataset     = errors.New("unknown dataset")
	ErrDatasetUnavailable = errors.New("dataset not downloaded")
	ErrNoSubjects         = errors.New("dataset has no subjects")
)

// EventPublisher is the optional event-bus hook; *kafka.Producer satisfies
// it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

type Loader struct {
	registry *datasets.Registry
	store    session.Store
	seed     int64

	// Optional collaborators; nil disables them.
	producer EventPublisher
	auditor  *archive.Repository
}

func New(registry *datasets.Registry, store session.Store) *Loader {
	return &Loader{registry: registry, store: store}
}

// WithSyntheticSeed fixes the demo generator seed; 0 keeps it random.
func (l *Loader) WithSyntheticSeed(seed int64) *Loader {
	l.seed = seed
	return l
}

func (l *Loader) WithPublisher(producer EventPublisher) *Loader {
	l.producer = producer
	return l
}

func (l *Loader) WithAuditor(auditor *archive.Repository) *Loader {
	l.auditor = auditor
	return l
}

// Load populates the session from the dataset. An empty subjectID picks the
// adapter's first listed subject. On a failure signal the session state is
// left untouched; every slot the adapter cannot populate stays cleared, so a
// load never leaves a previous subject's data behind.
func (l *Loader) Load(ctx context.Context, sessionID, datasetID, subjectID string) error {
	state, err := l.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		state = session.NewState()
	} else if err != nil {
		return err
	}

	if datasetID == session.SyntheticDatasetID {
		return l.loadSynthetic(ctx, sessionID, state)
	}

	adapter := l.registry.Get(datasetID)
	if adapter == nil {
		return ErrUnknownDataset
	}
	if !adapter.IsAvailable() {
		return ErrDatasetUnavailable
	}

	if subjectID == "" {
		subjects := adapter.ListSubjects()
		if len(subjects) == 0 {
			return ErrNoSubjects
		}
		subjectID = subjects[0].ID
	}

	state.ActiveDataset = datasetID
	state.ActiveSubject = subjectID
	state.ClearData()

	slots := map[string]interface{}{}

	if health := adapter.LoadHealthData(subjectID); len(health) > 0 {
		state.HealthData = health
		slots["health_data"] = len(health)
	}
	if labData, ok := datasets.LoadLabData(adapter, subjectID); ok && len(labData) > 0 {
		state.LabData = labData
		slots["lab_data"] = len(labData)
	}
	if genetic, ok := datasets.LoadGeneticData(adapter, subjectID); ok && genetic != nil {
		state.GeneticData = genetic
		slots["genetic_data"] = true
	}
	if workouts, ok := datasets.LoadWorkouts(adapter, subjectID); ok && len(workouts) > 0 {
		state.Workouts = workouts
		slots["workouts"] = len(workouts)
	}
	if profile, ok := datasets.SubjectProfile(adapter, subjectID); ok && profile != nil {
		state.Profile = profile
		slots["profile"] = true
	}

	state.DataLoaded = true
	if err := l.store.Save(ctx, sessionID, state); err != nil {
		return err
	}

	l.announce(ctx, sessionID, datasetID, subjectID, len(state.HealthData), slots)
	return nil
}

func (l *Loader) loadSynthetic(ctx context.Context, sessionID string, state *session.State) error {
	patient := synthetic.GeneratePatient(l.seed)

	state.ActiveDataset = session.SyntheticDatasetID
	state.ActiveSubject = ""
	state.ClearData()
	state.HealthData = patient.HealthData
	state.LabData = patient.LabData
	state.GeneticData = patient.Genetics
	state.Workouts = patient.Workouts
	state.Profile = patient.Profile
	state.DataLoaded = true

	if err := l.store.Save(ctx, sessionID, state); err != nil {
		return err
	}

	l.announce(ctx, sessionID, session.SyntheticDatasetID, "", len(state.HealthData), map[string]interface{}{
		"health_data": len(state.HealthData),
		"lab_data":    len(state.LabData),
		"workouts":    len(state.Workouts),
	})
	return nil
}

// announce publishes the load event and records the audit row. Both are
// best-effort: a broken broker or database never fails a load that already
// succeeded.
func (l *Loader) announce(ctx context.Context, sessionID, datasetID, subjectID string, recordCount int, slots map[string]interface{}) {
	if l.producer != nil {
		data := map[string]interface{}{
			"session_id":   sessionID,
			"dataset_id":   datasetID,
			"subject_id":   subjectID,
			"record_count": recordCount,
		}
		if err := l.producer.PublishEvent(ctx, "session.load", "loader", data); err != nil {
			logger.Log.WithError(err).Warn("failed to publish load event")
		}
	}
	if l.auditor != nil {
		event := &archive.LoadEventModel{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			DatasetID:   datasetID,
			SubjectID:   subjectID,
			RecordCount: recordCount,
			Slots:       datatypes.JSONMap(slots),
		}
		if err := l.auditor.Save(ctx, event); err != nil {
			logger.Log.WithError(err).Warn("failed to record load audit")
		}
	}
}
