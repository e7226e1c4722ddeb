// Package wearables holds adapters for consumer wearable exports: the Kaggle
// Fitbit merged-CSV dataset and the Simula PMData per-participant JSON
// dataset. Both feed the same day-bucketed reducers through structurally
// different ingestion paths.
package wearables

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

// Known archive nestings for the Kaggle Fitbit export.
var fitbitNestings = []string{
	"Fitabase Data 4.12.16-5.12.16",
	filepath.Join("mturkfitbit_export_4.12.16-5.12.16", "Fitabase Data 4.12.16-5.12.16"),
}

const (
	fitbitActivityFile = "dailyActivity_merged.csv"
	fitbitSleepFile    = "sleepDay_merged.csv"
	fitbitHRFile       = "heartrate_seconds_merged.csv"
)

// Fitbit adapts the Kaggle Fitbit Fitness Tracker dataset: one merged CSV
// per signal with one row per subject-day (or subject-second for heart
// rate).
type Fitbit struct {
	dataDir string
}

func NewFitbit(dataDir string) datasets.Adapter {
	return &Fitbit{dataDir: dataDir}
}

func (a *Fitbit) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		ID:           "fitbit_kaggle",
		Name:         "Fitbit Fitness Tracker (Kaggle)",
		Description:  "30 Fitbit users' daily activity, heart rate, and sleep data collected via Amazon Mechanical Turk survey (March-May 2016).",
		Category:     models.CategoryWearables,
		SourceURL:    "https://www.kaggle.com/datasets/arashnic/fitbit",
		Citation:     "Furberg, R., Brinton, J., Keating, M., & Ortiz, A. (2016). Crowd-sourced Fitbit datasets 03.12.2016-05.12.2016. Zenodo.",
		SubjectCount: 30,
		DateRange:    "2016-03-12 to 2016-05-12",
		SizeMB:       85,
		AvailableFields: []string{
			"steps", "distance_km", "active_calories", "total_calories",
			"active_minutes", "sedentary_minutes", "sleep_duration",
			"resting_hr", "hr_min", "hr_max",
		},
		DownloadInstructions: "1. Install Kaggle CLI: pip install kaggle\n" +
			"2. Set up Kaggle API credentials (~/.kaggle/kaggle.json)\n" +
			"3. Run: kaggle datasets download -d arashnic/fitbit -p data/datasets/fitbit_kaggle --unzip",
		RequiresAuth: true,
		License:      "CC0: Public Domain",
	}
}

func (a *Fitbit) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *Fitbit) findFile(name string) string {
	return datasets.FindFile(a.path(), name, fitbitNestings...)
}

func (a *Fitbit) IsAvailable() bool {
	if !datasets.DirExists(a.path()) {
		return false
	}
	return a.findFile(fitbitActivityFile) != ""
}

func (a *Fitbit) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}
	activityFile := a.findFile(fitbitActivityFile)
	if activityFile == "" {
		return []models.Subject{}
	}

	type stats struct {
		dates   map[string]bool
		records int
	}
	perSubject := make(map[string]*stats)
	datasets.ForEachRow(activityFile, ',', func(row map[string]string) bool {
		id := datasets.RowValue(row, "Id")
		if id == "" {
			return true
		}
		s, ok := perSubject[id]
		if !ok {
			s = &stats{dates: make(map[string]bool)}
			perSubject[id] = s
		}
		s.records++
		if d := datasets.RowValue(row, "ActivityDate"); d != "" {
			s.dates[d] = true
		}
		return true
	})

	ids := make([]string, 0, len(perSubject))
	for id := range perSubject {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	subjects := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		s := perSubject[id]
		dates := make([]string, 0, len(s.dates))
		for d := range s.dates {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		dateRange := ""
		if len(dates) > 0 {
			dateRange = fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
		}
		short := id
		if len(short) > 4 {
			short = short[len(short)-4:]
		}
		subjects = append(subjects, models.Subject{
			ID:          id,
			DisplayName: fmt.Sprintf("Subject %s", short),
			DateRange:   dateRange,
			RecordCount: s.records,
		})
	}
	return subjects
}

func (a *Fitbit) LoadHealthData(subjectID string) []*models.DailyRecord {
	if !a.IsAvailable() {
		return []*models.DailyRecord{}
	}

	days := make(datasets.DayMap)
	a.loadActivity(subjectID, days)
	a.loadSleep(subjectID, days)
	a.loadHeartRate(subjectID, days)
	return days.Sorted()
}

func (a *Fitbit) loadActivity(subjectID string, days datasets.DayMap) {
	activityFile := a.findFile(fitbitActivityFile)
	if activityFile == "" {
		return
	}
	datasets.ForEachRow(activityFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "Id") != subjectID {
			return true
		}
		date, ok := datasets.ParseDate(datasets.RowValue(row, "ActivityDate"))
		if !ok {
			return true
		}
		rec := days.Day(date)
		rec.Steps = datasets.SafeInt(row["TotalSteps"])
		rec.DistanceKM = datasets.SafeFloat(row["TotalDistance"])
		rec.ActiveCalories = datasets.SafeInt(row["Calories"])
		rec.TotalCalories = datasets.SafeInt(row["Calories"])
		rec.SedentaryMinutes = datasets.SafeInt(row["SedentaryMinutes"])

		active := 0
		seen := false
		for _, col := range []string{"VeryActiveMinutes", "FairlyActiveMinutes", "LightlyActiveMinutes"} {
			if v := datasets.SafeInt(row[col]); v != nil {
				active += *v
				seen = true
			}
		}
		if seen {
			rec.ActiveMinutes = models.Int(active)
		}
		return true
	})
}

func (a *Fitbit) loadSleep(subjectID string, days datasets.DayMap) {
	sleepFile := a.findFile(fitbitSleepFile)
	if sleepFile == "" {
		return
	}
	datasets.ForEachRow(sleepFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "Id") != subjectID {
			return true
		}
		// SleepDay carries a time component: "4/12/2016 12:00:00 AM".
		date, ok := datasets.ParseDate(datasets.RowValue(row, "SleepDay"))
		if !ok {
			return true
		}
		asleep := datasets.SafeFloat(row["TotalMinutesAsleep"])
		if asleep == nil {
			return true
		}
		rec := days.Day(date)
		rec.SleepDuration = models.Float(*asleep / 60)
		if inBed := datasets.SafeFloat(row["TotalTimeInBed"]); inBed != nil {
			if score, ok := datasets.SleepScoreFromEfficiency(*asleep, *inBed); ok {
				rec.SleepScore = models.Int(score)
			}
		}
		return true
	})
}

func (a *Fitbit) loadHeartRate(subjectID string, days datasets.DayMap) {
	hrFile := a.findFile(fitbitHRFile)
	if hrFile == "" {
		return
	}

	dailyHR := make(map[time.Time][]int)
	datasets.ForEachRow(hrFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "Id") != subjectID {
			return true
		}
		date, ok := datasets.ParseDate(datasets.RowValue(row, "Time"))
		if !ok {
			return true
		}
		if v := datasets.SafeInt(row["Value"]); v != nil {
			dailyHR[date] = append(dailyHR[date], *v)
		}
		return true
	})

	for date, values := range dailyHR {
		resting, ok := datasets.RestingHR(values)
		if !ok {
			continue
		}
		min, max := datasets.MinMaxInt(values)
		rec := days.Day(date)
		rec.RestingHR = models.Int(resting)
		rec.HRMin = models.Int(min)
		rec.HRMax = models.Int(max)
	}
}
