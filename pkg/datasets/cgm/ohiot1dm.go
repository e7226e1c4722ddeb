// Package cgm holds adapters for continuous-glucose-monitor time series.
package cgm

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

// OhioT1DM adapts the Ohio T1DM blood-glucose dataset: per-patient XML
// exports of 5-minute CGM readings plus insulin and meal annotations, with a
// CSV fallback layout. Insulin and meal tributaries contribute their days to
// the date union but project no schema fields; the canonical record carries
// no insulin/carb columns.
type OhioT1DM struct {
	dataDir string
}

func NewOhioT1DM(dataDir string) datasets.Adapter {
	return &OhioT1DM{dataDir: dataDir}
}

func (a *OhioT1DM) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		ID:           "ohio_t1dm",
		Name:         "OhioT1DM (CGM)",
		Description:  "12 Type 1 Diabetes patients with 8 weeks of continuous glucose monitoring at 5-minute intervals, plus insulin, meals, and activity data.",
		Category:     models.CategoryCGM,
		SourceURL:    "http://smarthealth.cs.ohio.edu/OhioT1DM-dataset.html",
		Citation:     "Marling, C., & Bunescu, R. (2020). The OhioT1DM Dataset for Blood Glucose Level Prediction. KHD Workshop at IJCAI.",
		SubjectCount: 12,
		DateRange:    "8 weeks per subject",
		SizeMB:       50,
		AvailableFields: []string{
			"glucose_avg", "glucose_min", "glucose_max", "glucose_std",
			"time_in_range",
		},
		DownloadInstructions: "1. Visit http://smarthealth.cs.ohio.edu/OhioT1DM-dataset.html\n" +
			"2. Complete the data use agreement form\n" +
			"3. Download the dataset (2018 or 2020 version)\n" +
			"4. Extract XML files to data/datasets/ohio_t1dm/",
		RequiresAuth: true,
		License:      "Research Use Only",
	}
}

func (a *OhioT1DM) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *OhioT1DM) IsAvailable() bool {
	root := a.path()
	if !datasets.DirExists(root) {
		return false
	}
	if len(datasets.GlobAll(root, "*.xml")) > 0 {
		return true
	}
	return len(a.patientDirs()) > 0
}

func (a *OhioT1DM) patientDirs() []string {
	entries, err := os.ReadDir(a.path())
	if err != nil {
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && isDigits(e.Name()) {
			dirs = append(dirs, filepath.Join(a.path(), e.Name()))
		}
	}
	return dirs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// patientXML is the OhioT1DM export shape; only the elements the adapter
// reads are declared.
type patientXML struct {
	Glucose struct {
		Events []tsEvent `xml:"event"`
	} `xml:"glucose_level"`
	Bolus struct {
		Events []tsEvent `xml:"event"`
	} `xml:"bolus"`
	Basal struct {
		Events []tsEvent `xml:"event"`
	} `xml:"basal"`
	Meal struct {
		Events []tsEvent `xml:"event"`
	} `xml:"meal"`
}

type tsEvent struct {
	TS    string `xml:"ts,attr"`
	Value string `xml:"value,attr"`
	Dose  string `xml:"dose,attr"`
	Carbs string `xml:"carbs,attr"`
}

func parsePatientXML(path string) (*patientXML, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var p patientXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (a *OhioT1DM) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}

	subjects := []models.Subject{}
	seen := make(map[string]bool)

	// XML files in the dataset root, named like "559-ws-training.xml".
	for _, xmlFile := range datasets.GlobAll(a.path(), "*.xml") {
		stem := strings.TrimSuffix(filepath.Base(xmlFile), ".xml")
		id := stem
		if i := strings.Index(stem, "-"); i > 0 {
			id = stem[:i]
		}
		if seen[id] {
			continue
		}
		patient, ok := parsePatientXML(xmlFile)
		if !ok {
			continue
		}
		seen[id] = true

		var dates []time.Time
		for _, ev := range patient.Glucose.Events {
			if ts, ok := datasets.ParseTimestamp(ev.TS); ok {
				dates = append(dates, datasets.DateOf(ts))
			}
		}
		dateRange := ""
		if len(dates) > 0 {
			sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
			dateRange = fmt.Sprintf("%s to %s",
				dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))
		}

		subjects = append(subjects, models.Subject{
			ID:          id,
			DisplayName: fmt.Sprintf("Patient %s", id),
			DateRange:   dateRange,
			RecordCount: len(patient.Glucose.Events),
		})
	}

	// Patient subdirectories as the alternate layout.
	for _, dir := range a.patientDirs() {
		id := filepath.Base(dir)
		if seen[id] {
			continue
		}
		seen[id] = true
		files := len(datasets.GlobAll(dir, "*.xml")) + len(datasets.GlobAll(dir, "*.csv"))
		subjects = append(subjects, models.Subject{
			ID:          id,
			DisplayName: fmt.Sprintf("Patient %s", id),
			RecordCount: files,
		})
	}

	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects
}

func (a *OhioT1DM) LoadHealthData(subjectID string) []*models.DailyRecord {
	if !a.IsAvailable() {
		return []*models.DailyRecord{}
	}

	glucoseByDay := a.loadGlucose(subjectID)
	annotationDays := a.loadAnnotationDays(subjectID)

	days := make(datasets.DayMap)
	for date, values := range glucoseByDay {
		if len(values) == 0 {
			continue
		}
		rec := days.Day(date)
		rec.GlucoseAvg = models.Float(datasets.Mean(values))
		min, max := values[0], values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		rec.GlucoseMin = models.Float(min)
		rec.GlucoseMax = models.Float(max)
		rec.GlucoseStd = models.Float(datasets.PopStd(values))
		rec.TimeInRange = models.Float(datasets.TimeInRange(values))
	}
	// Days with only insulin/meal annotations still appear, all fields
	// missing.
	for date := range annotationDays {
		days.Day(date)
	}
	return days.Sorted()
}

func (a *OhioT1DM) loadGlucose(subjectID string) map[time.Time][]float64 {
	result := make(map[time.Time][]float64)

	if patient, ok := a.findPatient(subjectID); ok {
		for _, ev := range patient.Glucose.Events {
			ts, ok := datasets.ParseTimestamp(ev.TS)
			if !ok {
				continue
			}
			if v := datasets.SafeFloat(ev.Value); v != nil {
				date := datasets.DateOf(ts)
				result[date] = append(result[date], *v)
			}
		}
	}

	if csvFile := a.findPatientCSV(subjectID, "glucose"); csvFile != "" {
		datasets.ForEachRow(csvFile, ',', func(row map[string]string) bool {
			ts := datasets.RowValue(row, "timestamp", "ts", "time")
			raw := datasets.RowValue(row, "value", "glucose")
			if ts == "" || raw == "" {
				return true
			}
			parsed, ok := datasets.ParseTimestamp(ts)
			if !ok {
				return true
			}
			if v := datasets.SafeFloat(raw); v != nil {
				date := datasets.DateOf(parsed)
				result[date] = append(result[date], *v)
			}
			return true
		})
	}

	return result
}

// loadAnnotationDays collects the calendar days touched by insulin and meal
// events so they join the date union.
func (a *OhioT1DM) loadAnnotationDays(subjectID string) map[time.Time]bool {
	result := make(map[time.Time]bool)
	patient, ok := a.findPatient(subjectID)
	if !ok {
		return result
	}
	for _, events := range [][]tsEvent{patient.Bolus.Events, patient.Basal.Events, patient.Meal.Events} {
		for _, ev := range events {
			if ts, ok := datasets.ParseTimestamp(ev.TS); ok {
				result[datasets.DateOf(ts)] = true
			}
		}
	}
	return result
}

func (a *OhioT1DM) findPatient(subjectID string) (*patientXML, bool) {
	if xmlFile := a.findPatientXML(subjectID); xmlFile != "" {
		return parsePatientXML(xmlFile)
	}
	return nil, false
}

func (a *OhioT1DM) findPatientXML(subjectID string) string {
	direct := filepath.Join(a.path(), subjectID+".xml")
	if _, err := os.Stat(direct); err == nil {
		return direct
	}
	if f := datasets.FindGlob(a.path(), subjectID+"*.xml"); f != "" {
		return f
	}
	return datasets.FindGlob(filepath.Join(a.path(), subjectID), "*.xml")
}

func (a *OhioT1DM) findPatientCSV(subjectID, dataType string) string {
	patterns := []string{
		fmt.Sprintf("%s_%s.csv", subjectID, dataType),
		fmt.Sprintf("%s-%s.csv", subjectID, dataType),
		dataType + ".csv",
	}
	// Checked in the root and the patient's subdirectory only; a recursive
	// search could match another patient's file under the generic names.
	for _, pattern := range patterns {
		for _, candidate := range []string{
			filepath.Join(a.path(), pattern),
			filepath.Join(a.path(), subjectID, pattern),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// SubjectProfile reports the cohort condition; OhioT1DM withholds
// demographics for privacy.
func (a *OhioT1DM) SubjectProfile(subjectID string) *models.SubjectProfile {
	return &models.SubjectProfile{
		Condition: models.Str("Type 1 Diabetes"),
	}
}
