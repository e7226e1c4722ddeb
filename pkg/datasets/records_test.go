package datasets

import (
	"testing"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayMapMergeUnion(t *testing.T) {
	m := DayMap{}

	// Activity tributary touches two days.
	m.Day(day(2016, 4, 12)).Steps = models.Int(10000)
	m.Day(day(2016, 4, 13)).Steps = models.Int(8000)

	// Sleep tributary touches one of them plus a new day.
	m.Day(day(2016, 4, 13)).SleepDuration = models.Float(7.5)
	m.Day(day(2016, 4, 14)).SleepDuration = models.Float(6.0)

	records := m.Sorted()
	if len(records) != 3 {
		t.Fatalf("expected union of 3 days, got %d", len(records))
	}

	// Day seen by both tributaries carries both fields.
	both := records[1]
	if both.Steps == nil || *both.Steps != 8000 {
		t.Fatalf("expected steps preserved on merged day")
	}
	if both.SleepDuration == nil || *both.SleepDuration != 7.5 {
		t.Fatalf("expected sleep preserved on merged day")
	}

	// Day seen by one tributary leaves the rest missing.
	if records[0].SleepDuration != nil {
		t.Fatalf("expected missing sleep on activity-only day")
	}
	if records[2].Steps != nil {
		t.Fatalf("expected missing steps on sleep-only day")
	}
}

func TestDayMapSortedAscending(t *testing.T) {
	m := DayMap{}
	m.Day(day(2016, 4, 14))
	m.Day(day(2016, 4, 12))
	m.Day(day(2016, 4, 13))

	records := m.Sorted()
	for i := 1; i < len(records); i++ {
		if !records[i-1].Date.Before(records[i].Date) {
			t.Fatalf("records out of order at %d: %v >= %v", i, records[i-1].Date, records[i].Date)
		}
	}
}

func TestEmptyRecordHasAllFieldsMissing(t *testing.T) {
	rec := models.EmptyRecord(day(2016, 4, 12))
	if !rec.Date.Equal(day(2016, 4, 12)) {
		t.Fatalf("unexpected date %v", rec.Date)
	}
	if rec.Steps != nil || rec.SleepDuration != nil || rec.GlucoseAvg != nil || rec.RestingHR != nil {
		t.Fatalf("expected all metric fields nil on an empty record")
	}
}

func TestRecordFieldNamesCount(t *testing.T) {
	names := models.RecordFieldNames()
	if len(names) != 26 {
		t.Fatalf("expected 26 canonical fields, got %d", len(names))
	}
	if names[0] != "date" {
		t.Fatalf("expected date first, got %q", names[0])
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate field name %q", n)
		}
		seen[n] = true
	}
}
