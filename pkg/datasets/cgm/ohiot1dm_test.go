package cgm

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

const ohioXMLFixture = `<patient id="559">
  <glucose_level>
    <event ts="07-01-2022 00:05:00" value="90"/>
    <event ts="07-01-2022 06:00:00" value="100"/>
    <event ts="07-01-2022 12:00:00" value="110"/>
    <event ts="07-01-2022 18:00:00" value="120"/>
    <event ts="07-01-2022 23:55:00" value="200"/>
    <event ts="08-01-2022 08:00:00" value="95"/>
  </glucose_level>
  <bolus>
    <event ts="09-01-2022 12:30:00" dose="4.5"/>
  </bolus>
  <meal>
    <event ts="07-01-2022 12:15:00" carbs="45"/>
  </meal>
</patient>
`

func writeOhioFixture(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	root := filepath.Join(dataDir, "ohio_t1dm")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "559-ws-training.xml"), []byte(ohioXMLFixture), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dataDir
}

func TestOhioT1DMListSubjects(t *testing.T) {
	a := NewOhioT1DM(writeOhioFixture(t))
	if !a.IsAvailable() {
		t.Fatalf("expected available")
	}

	subjects := a.ListSubjects()
	if len(subjects) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(subjects))
	}
	if subjects[0].ID != "559" || subjects[0].DisplayName != "Patient 559" {
		t.Fatalf("unexpected subject: %+v", subjects[0])
	}
	if subjects[0].RecordCount != 6 {
		t.Fatalf("expected 6 glucose events, got %d", subjects[0].RecordCount)
	}
	if subjects[0].DateRange != "2022-01-07 to 2022-01-08" {
		t.Fatalf("unexpected date range %q", subjects[0].DateRange)
	}
}

func TestOhioT1DMGlucoseAggregation(t *testing.T) {
	a := NewOhioT1DM(writeOhioFixture(t))

	records := a.LoadHealthData("559")
	// Two glucose days plus one bolus-only day.
	if len(records) != 3 {
		t.Fatalf("expected 3 days, got %d", len(records))
	}

	day1 := records[0]
	if !day1.Date.Equal(time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first date: %v", day1.Date)
	}
	if day1.GlucoseAvg == nil || *day1.GlucoseAvg != 124 {
		t.Fatalf("unexpected glucose avg: %v", day1.GlucoseAvg)
	}
	if day1.GlucoseMin == nil || *day1.GlucoseMin != 90 {
		t.Fatalf("unexpected glucose min: %v", day1.GlucoseMin)
	}
	if day1.GlucoseMax == nil || *day1.GlucoseMax != 200 {
		t.Fatalf("unexpected glucose max: %v", day1.GlucoseMax)
	}
	if day1.GlucoseStd == nil || math.Abs(*day1.GlucoseStd-39.0) > 0.1 {
		t.Fatalf("unexpected glucose std: %v", day1.GlucoseStd)
	}
	if day1.TimeInRange == nil || *day1.TimeInRange != 80 {
		t.Fatalf("unexpected time in range: %v", day1.TimeInRange)
	}
}

func TestOhioT1DMAnnotationDaysJoinUnion(t *testing.T) {
	a := NewOhioT1DM(writeOhioFixture(t))

	records := a.LoadHealthData("559")
	last := records[len(records)-1]
	if !last.Date.Equal(time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected bolus-only day in the union, got %v", last.Date)
	}
	// Annotation days carry no glucose fields.
	if last.GlucoseAvg != nil || last.TimeInRange != nil {
		t.Fatalf("expected empty fields on annotation-only day: %+v", last)
	}
}

func TestOhioT1DMCSVFallback(t *testing.T) {
	dataDir := t.TempDir()
	patientDir := filepath.Join(dataDir, "ohio_t1dm", "563")
	if err := os.MkdirAll(patientDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	csv := "timestamp,value\n2022-01-07 08:00:00,85\n2022-01-07 09:00:00,95\n"
	if err := os.WriteFile(filepath.Join(patientDir, "glucose.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	a := NewOhioT1DM(dataDir)
	if !a.IsAvailable() {
		t.Fatalf("expected available via patient subdirectory")
	}

	subjects := a.ListSubjects()
	if len(subjects) != 1 || subjects[0].ID != "563" {
		t.Fatalf("unexpected subjects: %+v", subjects)
	}

	records := a.LoadHealthData("563")
	if len(records) != 1 {
		t.Fatalf("expected 1 day from CSV fallback, got %d", len(records))
	}
	if records[0].GlucoseAvg == nil || *records[0].GlucoseAvg != 90 {
		t.Fatalf("unexpected glucose avg: %v", records[0].GlucoseAvg)
	}
}

func TestOhioT1DMProfileReportsCondition(t *testing.T) {
	a := NewOhioT1DM(writeOhioFixture(t))
	profile, ok := datasets.SubjectProfile(a, "559")
	if !ok || profile == nil {
		t.Fatalf("expected a profile")
	}
	if profile.Condition == nil || *profile.Condition != "Type 1 Diabetes" {
		t.Fatalf("unexpected condition: %v", profile.Condition)
	}
	if profile.Age != nil || profile.Sex != nil {
		t.Fatalf("expected withheld demographics to stay nil")
	}
}
