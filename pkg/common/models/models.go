package models

import "time"

// DataCategory groups datasets by the kind of signal they carry.
type DataCategory string

const (
	CategoryWearables DataCategory = "wearables"
	CategoryClinical  DataCategory = "clinical"
	CategoryGenetics  DataCategory = "genetics"
	CategorySleep     DataCategory = "sleep"
	CategoryCGM       DataCategory = "cgm"
)

func (c DataCategory) Valid() bool {
	switch c {
	case CategoryWearables, CategoryClinical, CategoryGenetics, CategorySleep, CategoryCGM:
		return true
	}
	return false
}

// DatasetMetadata is the static description of a dataset. Adapters construct
// it fresh on every call; it carries no runtime state.
type DatasetMetadata struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Description          string       `json:"description"`
	Category             DataCategory `json:"category"`
	SourceURL            string       `json:"source_url"`
	Citation             string       `json:"citation"`
	SubjectCount         int          `json:"subject_count"`
	DateRange            string       `json:"date_range,omitempty"`
	SizeMB               float64      `json:"size_mb,omitempty"`
	AvailableFields      []string     `json:"available_fields"`
	DownloadInstructions string       `json:"download_instructions"`
	RequiresAuth         bool         `json:"requires_auth"`
	License              string       `json:"license"`
}

// Subject is one participant within a dataset. IDs are dataset-local, not
// globally unique.
type Subject struct {
	ID          string                 `json:"id"`
	DisplayName string                 `json:"display_name"`
	DateRange   string                 `json:"date_range,omitempty"`
	RecordCount int                    `json:"record_count"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// LabFlag classifies a lab value against its reference interval.
type LabFlag string

const (
	LabFlagLow    LabFlag = "low"
	LabFlagNormal LabFlag = "normal"
	LabFlagHigh   LabFlag = "high"
)

type LabRecord struct {
	Name           string    `json:"name"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	ReferenceRange string    `json:"reference_range"`
	Flag           LabFlag   `json:"flag"`
	Date           time.Time `json:"date"`
}

type Workout struct {
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	Calories        int       `json:"calories"`
	AvgHR           int       `json:"avg_hr,omitempty"`
	DistanceKM      float64   `json:"distance_km,omitempty"`
}

// SubjectProfile is the demographic snapshot for a subject. Fields a dataset
// cannot supply stay nil.
type SubjectProfile struct {
	Age       *int     `json:"age"`
	Sex       *string  `json:"sex"`
	HeightCM  *float64 `json:"height_cm"`
	WeightKG  *float64 `json:"weight_kg"`
	Condition *string  `json:"condition,omitempty"`
}

// Event is the envelope published to the event bus on orchestrated loads.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}
