package wearables

import (
	"os"
	"path/filepath"
	"testing"
)

const pmSleepFixture = `[
  {
    "dateOfSleep": "2019-11-01",
    "minutesAsleep": 420,
    "efficiency": 93,
    "levels": {
      "summary": {
        "deep": {"minutes": 66},
        "rem": {"minutes": 90},
        "light": {"minutes": 264},
        "wake": {"minutes": 36}
      }
    }
  }
]`

const pmStepsFixture = `[
  {"dateTime": "2019-11-01", "value": "9500"},
  {"dateTime": "2019-11-02", "value": "7200"}
]`

const pmCaloriesFixture = `[
  {"dateTime": "2019-11-01", "value": 2350}
]`

const pmHRFixture = `[
  {"dateTime": "2019-11-01 07:00:00", "value": {"bpm": 55, "confidence": 2}},
  {"dateTime": "2019-11-01 12:00:00", "value": {"bpm": 88, "confidence": 2}},
  {"dateTime": "2019-11-01 18:00:00", "value": {"bpm": 130, "confidence": 3}}
]`

func writePMDataFixture(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	fitbitDir := filepath.Join(dataDir, "pmdata", "p01", "fitbit")
	hrDir := filepath.Join(fitbitDir, "heart_rate")
	if err := os.MkdirAll(hrDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		filepath.Join(fitbitDir, "sleep.json"):                     pmSleepFixture,
		filepath.Join(fitbitDir, "steps.json"):                     pmStepsFixture,
		filepath.Join(fitbitDir, "calories.json"):                  pmCaloriesFixture,
		filepath.Join(hrDir, "heart_rate-2019-11-01.json"):         pmHRFixture,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dataDir
}

func TestPMDataUnavailableWithoutParticipants(t *testing.T) {
	a := NewPMData(t.TempDir())
	if a.IsAvailable() {
		t.Fatalf("expected unavailable")
	}
}

func TestPMDataListSubjects(t *testing.T) {
	a := NewPMData(writePMDataFixture(t))
	if !a.IsAvailable() {
		t.Fatalf("expected available")
	}

	subjects := a.ListSubjects()
	if len(subjects) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(subjects))
	}
	if subjects[0].ID != "p01" || subjects[0].DisplayName != "Participant P01" {
		t.Fatalf("unexpected subject: %+v", subjects[0])
	}
	if subjects[0].RecordCount != 1 {
		t.Fatalf("expected 1 sleep record, got %d", subjects[0].RecordCount)
	}
}

func TestPMDataLoadHealthData(t *testing.T) {
	a := NewPMData(writePMDataFixture(t))

	records := a.LoadHealthData("p01")
	// Steps cover 11/01 and 11/02; sleep and HR cover 11/01 only.
	if len(records) != 2 {
		t.Fatalf("expected 2 days, got %d", len(records))
	}

	day1 := records[0]
	if day1.SleepDuration == nil || *day1.SleepDuration != 7.0 {
		t.Fatalf("unexpected sleep duration: %v", day1.SleepDuration)
	}
	// Efficiency is a directly-reported score, clamped not rescaled.
	if day1.SleepScore == nil || *day1.SleepScore != 93 {
		t.Fatalf("unexpected sleep score: %v", day1.SleepScore)
	}
	if day1.DeepSleep == nil || *day1.DeepSleep != 1.1 {
		t.Fatalf("unexpected deep sleep: %v", day1.DeepSleep)
	}
	if day1.Steps == nil || *day1.Steps != 9500 {
		t.Fatalf("unexpected steps: %v", day1.Steps)
	}
	if day1.ActiveCalories == nil || *day1.ActiveCalories != 2350 {
		t.Fatalf("unexpected calories: %v", day1.ActiveCalories)
	}
	// Nested bpm values: sorted [55 88 130], index 0 -> 55.
	if day1.RestingHR == nil || *day1.RestingHR != 55 {
		t.Fatalf("unexpected resting HR: %v", day1.RestingHR)
	}
	if day1.HRMax == nil || *day1.HRMax != 130 {
		t.Fatalf("unexpected HR max: %v", day1.HRMax)
	}

	day2 := records[1]
	if day2.Steps == nil || *day2.Steps != 7200 {
		t.Fatalf("unexpected steps on day 2: %v", day2.Steps)
	}
	if day2.SleepDuration != nil {
		t.Fatalf("expected missing sleep on steps-only day")
	}
}

func TestPMDataUnknownSubject(t *testing.T) {
	a := NewPMData(writePMDataFixture(t))
	if records := a.LoadHealthData("p99"); len(records) != 0 {
		t.Fatalf("expected no records for unknown participant, got %d", len(records))
	}
}
