// Package datasets defines the adapter contract that normalizes heterogeneous
// public health datasets into the common daily record schema, and the registry
// that dispatches to adapter implementations.
package datasets

import (
	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

// Adapter translates one dataset family into the canonical schema. Calls are
// independent and idempotent: every call re-reads the filesystem, so a cached
// adapter instance never serves stale results after the dataset directory
// changes.
type Adapter interface {
	// Metadata returns the static dataset description. Pure, no I/O.
	Metadata() models.DatasetMetadata

	// IsAvailable reports whether the minimal file set for this dataset
	// exists under the data directory. Existence and glob checks only; it
	// is called per render and must stay cheap.
	IsAvailable() bool

	// ListSubjects enumerates participants. It returns an empty slice when
	// the dataset is unavailable and never fails on dirty input. Large
	// datasets may truncate the result to a bounded prefix; callers must
	// not assume completeness beyond the adapter's documented cap.
	ListSubjects() []models.Subject

	// LoadHealthData returns the subject's daily records, sorted ascending
	// by date with unique dates. Missing tributary files and malformed rows
	// are tolerated; the result is the union of all days seen across
	// tributaries, partial days included.
	LoadHealthData(subjectID string) []*models.DailyRecord
}

// Optional capabilities. An adapter that does not implement one of these
// interfaces does not support the data kind; an adapter that implements it
// but returns an empty slice supports it and found nothing.

type LabLoader interface {
	LoadLabData(subjectID string) []models.LabRecord
}

type GeneticLoader interface {
	LoadGeneticData(subjectID string) *models.GeneticProfile
}

type WorkoutLoader interface {
	LoadWorkouts(subjectID string) []models.Workout
}

type ProfileLoader interface {
	SubjectProfile(subjectID string) *models.SubjectProfile
}

// LoadLabData dispatches to the optional capability. The second return value
// distinguishes "unsupported" from "supported but empty".
func LoadLabData(a Adapter, subjectID string) ([]models.LabRecord, bool) {
	l, ok := a.(LabLoader)
	if !ok {
		return nil, false
	}
	return l.LoadLabData(subjectID), true
}

func LoadGeneticData(a Adapter, subjectID string) (*models.GeneticProfile, bool) {
	l, ok := a.(GeneticLoader)
	if !ok {
		return nil, false
	}
	return l.LoadGeneticData(subjectID), true
}

func LoadWorkouts(a Adapter, subjectID string) ([]models.Workout, bool) {
	l, ok := a.(WorkoutLoader)
	if !ok {
		return nil, false
	}
	return l.LoadWorkouts(subjectID), true
}

func SubjectProfile(a Adapter, subjectID string) (*models.SubjectProfile, bool) {
	l, ok := a.(ProfileLoader)
	if !ok {
		return nil, false
	}
	return l.SubjectProfile(subjectID), true
}

// Factory constructs an adapter rooted at the given data directory.
type Factory func(dataDir string) Adapter
