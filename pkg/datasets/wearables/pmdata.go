package wearables

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

// PMData adapts the Simula PMData dataset: one directory per participant
// with one JSON file per signal, one object per timestamped event.
type PMData struct {
	dataDir string
}

func NewPMData(dataDir string) datasets.Adapter {
	return &PMData{dataDir: dataDir}
}

func (a *PMData) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		ID:           "pmdata",
		Name:         "PMData (Simula)",
		Description:  "16 participants over 5 months with 20M+ heart rate readings, sleep scores, and activity data from Fitbit devices.",
		Category:     models.CategoryWearables,
		SourceURL:    "https://datasets.simula.no/pmdata/",
		Citation:     "Thambawita, V., et al. (2020). PMData: A Sports Logging Dataset. MMSys '20.",
		SubjectCount: 16,
		DateRange:    "~5 months per subject",
		SizeMB:       500,
		AvailableFields: []string{
			"steps", "resting_hr", "hrv", "sleep_duration", "sleep_score",
			"deep_sleep", "rem_sleep", "light_sleep", "active_calories",
		},
		DownloadInstructions: "1. Visit https://datasets.simula.no/pmdata/\n" +
			"2. Download the dataset (requires acceptance of terms)\n" +
			"3. Extract to data/datasets/pmdata/",
		RequiresAuth: false,
		License:      "CC BY 4.0",
	}
}

func (a *PMData) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *PMData) participantDirs() []string {
	return datasets.GlobAll(a.path(), "p[0-9]*")
}

func (a *PMData) IsAvailable() bool {
	if !datasets.DirExists(a.path()) {
		return false
	}
	for _, dir := range a.participantDirs() {
		if datasets.DirExists(dir) {
			return true
		}
	}
	return false
}

// pmSleep matches the Fitbit export schema PMData ships.
type pmSleep struct {
	DateOfSleep   string `json:"dateOfSleep"`
	MinutesAsleep int    `json:"minutesAsleep"`
	Efficiency    int    `json:"efficiency"`
	Levels        struct {
		Summary map[string]struct {
			Minutes int `json:"minutes"`
		} `json:"summary"`
	} `json:"levels"`
}

type pmDatedValue struct {
	DateTime string          `json:"dateTime"`
	Value    json.RawMessage `json:"value"`
}

func (a *PMData) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}

	dirs := a.participantDirs()
	sort.Strings(dirs)

	subjects := make([]models.Subject, 0, len(dirs))
	for _, dir := range dirs {
		if !datasets.DirExists(dir) {
			continue
		}
		id := filepath.Base(dir)

		recordCount := 0
		var dates []string
		var sleepRecords []pmSleep
		if readJSON(filepath.Join(dir, "fitbit", "sleep.json"), &sleepRecords) {
			recordCount = len(sleepRecords)
			for _, rec := range sleepRecords {
				if rec.DateOfSleep != "" {
					dates = append(dates, rec.DateOfSleep)
				}
			}
		}
		sort.Strings(dates)
		dateRange := ""
		if len(dates) > 0 {
			dateRange = fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
		}

		subjects = append(subjects, models.Subject{
			ID:          id,
			DisplayName: fmt.Sprintf("Participant %s", strings.ToUpper(id)),
			DateRange:   dateRange,
			RecordCount: recordCount,
		})
	}
	return subjects
}

func (a *PMData) LoadHealthData(subjectID string) []*models.DailyRecord {
	if !a.IsAvailable() {
		return []*models.DailyRecord{}
	}
	subjPath := filepath.Join(a.path(), subjectID, "fitbit")
	if !datasets.DirExists(subjPath) {
		return []*models.DailyRecord{}
	}

	days := make(datasets.DayMap)
	a.loadActivity(subjPath, days)
	a.loadSleep(subjPath, days)
	a.loadHeartRate(subjPath, days)
	return days.Sorted()
}

func (a *PMData) loadSleep(subjPath string, days datasets.DayMap) {
	var records []pmSleep
	if !readJSON(filepath.Join(subjPath, "sleep.json"), &records) {
		return
	}
	for _, src := range records {
		date, ok := datasets.ParseDate(src.DateOfSleep)
		if !ok {
			continue
		}
		rec := days.Day(date)
		if src.MinutesAsleep > 0 {
			rec.SleepDuration = models.Float(float64(src.MinutesAsleep) / 60)
		}
		if src.Efficiency > 0 {
			rec.SleepScore = models.Int(datasets.ClampScore(float64(src.Efficiency)))
		}
		if stage, ok := src.Levels.Summary["deep"]; ok {
			rec.DeepSleep = models.Float(float64(stage.Minutes) / 60)
		}
		if stage, ok := src.Levels.Summary["rem"]; ok {
			rec.REMSleep = models.Float(float64(stage.Minutes) / 60)
		}
		if stage, ok := src.Levels.Summary["light"]; ok {
			rec.LightSleep = models.Float(float64(stage.Minutes) / 60)
		}
		if stage, ok := src.Levels.Summary["wake"]; ok {
			rec.AwakeTime = models.Float(float64(stage.Minutes) / 60)
		}
	}
}

func (a *PMData) loadHeartRate(subjPath string, days datasets.DayMap) {
	hrDir := filepath.Join(subjPath, "heart_rate")
	if !datasets.DirExists(hrDir) {
		return
	}

	for _, hrFile := range datasets.GlobAll(hrDir, "*.json") {
		// Daily files named heart_rate-YYYY-MM-DD.json.
		stem := strings.TrimSuffix(filepath.Base(hrFile), ".json")
		dateStr := strings.TrimPrefix(stem, "heart_rate-")
		date, ok := datasets.ParseDate(dateStr)
		if !ok {
			continue
		}

		var events []pmDatedValue
		if !readJSON(hrFile, &events) {
			continue
		}

		var values []int
		for _, ev := range events {
			if v, ok := decodeHRValue(ev.Value); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		resting, _ := datasets.RestingHR(values)
		min, max := datasets.MinMaxInt(values)
		rec := days.Day(date)
		rec.RestingHR = models.Int(resting)
		rec.HRMin = models.Int(min)
		rec.HRMax = models.Int(max)
	}
}

func (a *PMData) loadActivity(subjPath string, days datasets.DayMap) {
	var steps []pmDatedValue
	if readJSON(filepath.Join(subjPath, "steps.json"), &steps) {
		for _, ev := range steps {
			date, ok := datasets.ParseDate(ev.DateTime)
			if !ok {
				continue
			}
			if v, ok := decodeIntValue(ev.Value); ok {
				days.Day(date).Steps = models.Int(v)
			}
		}
	}

	var calories []pmDatedValue
	if readJSON(filepath.Join(subjPath, "calories.json"), &calories) {
		for _, ev := range calories {
			date, ok := datasets.ParseDate(ev.DateTime)
			if !ok {
				continue
			}
			if v, ok := decodeIntValue(ev.Value); ok {
				days.Day(date).ActiveCalories = models.Int(v)
			}
		}
	}
}

func readJSON(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// decodeHRValue accepts both the flat form {"value": 62} and the nested
// Fitbit form {"value": {"bpm": 62, "confidence": 2}}.
func decodeHRValue(raw json.RawMessage) (int, bool) {
	if v, ok := decodeIntValue(raw); ok {
		return v, true
	}
	var nested struct {
		BPM int `json:"bpm"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.BPM > 0 {
		return nested.BPM, true
	}
	return 0, false
}

func decodeIntValue(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v := datasets.SafeInt(s); v != nil {
			return *v, true
		}
	}
	return 0, false
}
