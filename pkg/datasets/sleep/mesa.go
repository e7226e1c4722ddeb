// Package sleep holds adapters for polysomnography and actigraphy studies.
package sleep

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

const defaultSubjectCap = 200

// MESA publishes no calendar dates; PSG nights anchor here and actigraphy
// days run sequentially from it.
var mesaEpoch = time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)

// MESA adapts the NSRR MESA sleep study. Each subject has two temporal
// granularities: a single polysomnography night and a multi-day actigraphy
// run. Both are valid days in the unified output and are concatenated, not
// merged against each other.
type MESA struct {
	dataDir    string
	subjectCap int
}

func NewMESA(dataDir string) datasets.Adapter {
	return &MESA{dataDir: dataDir, subjectCap: defaultSubjectCap}
}

func (a *MESA) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		ID:           "nsrr_mesa",
		Name:         "NSRR MESA Sleep Study",
		Description:  "2,237 participants with polysomnography recordings and 7-day actigraphy from the Multi-Ethnic Study of Atherosclerosis.",
		Category:     models.CategorySleep,
		SourceURL:    "https://sleepdata.org/datasets/mesa",
		Citation:     "Chen, X., et al. (2015). Racial/Ethnic Differences in Sleep Disturbances. Sleep, 38(6).",
		SubjectCount: 2237,
		DateRange:    "2010-2013",
		SizeMB:       500,
		AvailableFields: []string{
			"sleep_duration", "sleep_score", "deep_sleep", "rem_sleep",
			"light_sleep", "awake_time", "steps",
		},
		DownloadInstructions: "1. Register at https://sleepdata.org/\n" +
			"2. Request access to MESA dataset\n" +
			"3. Download: mesa-sleep-dataset-*.csv, mesa-actigraphy-*.csv\n" +
			"4. Place files in data/datasets/nsrr_mesa/\n" +
			"Note: Requires data use agreement approval (~1-2 weeks)",
		RequiresAuth: true,
		License:      "Data Use Agreement Required",
	}
}

func (a *MESA) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *MESA) findFile(pattern string) string {
	return datasets.FindGlob(a.path(),
		fmt.Sprintf("*%s*.csv", pattern),
		fmt.Sprintf("*%s*.csv", strings.ToLower(pattern)),
	)
}

func (a *MESA) sleepFile() string {
	if f := a.findFile("sleep"); f != "" {
		return f
	}
	if f := a.findFile("psg"); f != "" {
		return f
	}
	return a.findFile("polysom")
}

func (a *MESA) IsAvailable() bool {
	return datasets.DirExists(a.path()) && a.sleepFile() != ""
}

func (a *MESA) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}
	sleepFile := a.sleepFile()
	if sleepFile == "" {
		return []models.Subject{}
	}

	subjects := []models.Subject{}
	seen := make(map[string]bool)
	datasets.ForEachRow(sleepFile, ',', func(row map[string]string) bool {
		id := datasets.RowValue(row, "mesaid", "nsrrid", "id")
		if id == "" || seen[id] {
			return true
		}
		seen[id] = true
		subjects = append(subjects, models.Subject{
			ID:          id,
			DisplayName: fmt.Sprintf("MESA-%s", id),
			RecordCount: 1,
			Metadata:    map[string]interface{}{"study": "MESA"},
		})
		return len(subjects) < a.subjectCap
	})
	return subjects
}

func (a *MESA) LoadHealthData(subjectID string) []*models.DailyRecord {
	if !a.IsAvailable() {
		return []*models.DailyRecord{}
	}

	records := []*models.DailyRecord{}
	if psg := a.loadPSG(subjectID); psg != nil {
		records = append(records, psg)
	}
	records = append(records, a.loadActigraphy(subjectID)...)

	days := make(datasets.DayMap)
	for _, rec := range records {
		days[rec.Date] = rec
	}
	return days.Sorted()
}

// loadPSG reduces the subject's single polysomnography night to one record
// anchored at the placeholder epoch.
func (a *MESA) loadPSG(subjectID string) *models.DailyRecord {
	sleepFile := a.sleepFile()
	if sleepFile == "" {
		return nil
	}

	var result *models.DailyRecord
	datasets.ForEachRow(sleepFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "mesaid", "nsrrid") != subjectID {
			return true
		}
		rec := models.EmptyRecord(mesaEpoch)

		if tst := datasets.SafeFloat(row["slpprdp"]); tst != nil {
			rec.SleepDuration = models.Float(*tst / 60)
		}
		if eff := datasets.SafeFloat(row["slpeffp"]); eff != nil {
			rec.SleepScore = models.Int(datasets.ClampScore(*eff))
		}
		if n3 := datasets.SafeFloat(row["timest3p"]); n3 != nil {
			rec.DeepSleep = models.Float(*n3 / 60)
		}
		if rem := datasets.SafeFloat(row["timeremp"]); rem != nil {
			rec.REMSleep = models.Float(*rem / 60)
		}
		light := 0.0
		haveLight := false
		if n1 := datasets.SafeFloat(row["timest1p"]); n1 != nil {
			light += *n1
			haveLight = true
		}
		if n2 := datasets.SafeFloat(row["timest2p"]); n2 != nil {
			light += *n2
			haveLight = true
		}
		if haveLight {
			rec.LightSleep = models.Float(light / 60)
		}
		if waso := datasets.SafeFloat(row["waso"]); waso != nil {
			rec.AwakeTime = models.Float(*waso / 60)
		}

		result = rec
		return false
	})
	return result
}

// loadActigraphy expands the subject's actigraphy run into sequential days
// starting the day after the PSG placeholder night.
func (a *MESA) loadActigraphy(subjectID string) []*models.DailyRecord {
	actiFile := a.findFile("actigraphy")
	if actiFile == "" {
		actiFile = a.findFile("acti")
	}
	if actiFile == "" {
		return nil
	}

	var records []*models.DailyRecord
	dayNum := 0
	datasets.ForEachRow(actiFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "mesaid", "nsrrid") != subjectID {
			return true
		}
		dayNum++
		rec := models.EmptyRecord(mesaEpoch.AddDate(0, 0, dayNum))

		if sleepMin := datasets.SafeFloat(datasets.RowValue(row, "sleepmain", "sleeptime")); sleepMin != nil {
			rec.SleepDuration = models.Float(*sleepMin / 60)
		}
		if eff := datasets.SafeFloat(datasets.RowValue(row, "efficiency", "slpeff")); eff != nil {
			rec.SleepScore = models.Int(datasets.ClampScore(*eff))
		}
		if activity := datasets.SafeInt(datasets.RowValue(row, "activity", "actcount")); activity != nil {
			rec.Steps = activity
		}

		records = append(records, rec)
		return true
	})
	return records
}

func (a *MESA) SubjectProfile(subjectID string) *models.SubjectProfile {
	if !a.IsAvailable() {
		return nil
	}
	demoFile := a.findFile("demo")
	if demoFile == "" {
		demoFile = a.findFile("baseline")
	}
	if demoFile == "" {
		demoFile = a.sleepFile()
	}
	if demoFile == "" {
		return nil
	}

	var profile *models.SubjectProfile
	datasets.ForEachRow(demoFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "mesaid", "nsrrid") != subjectID {
			return true
		}
		profile = &models.SubjectProfile{
			Age:      datasets.SafeInt(datasets.RowValue(row, "sleepage5c", "age")),
			HeightCM: datasets.SafeFloat(row["htcm"]),
			WeightKG: datasets.SafeFloat(row["wtkg"]),
		}
		if sex := parseSex(datasets.RowValue(row, "gender", "gender1")); sex != "" {
			profile.Sex = models.Str(sex)
		}
		return false
	})
	return profile
}

func parseSex(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "male", "m":
		return "male"
	case "2", "female", "f":
		return "female"
	}
	return ""
}
