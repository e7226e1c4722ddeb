package sleep

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

const mesaSleepFixture = `mesaid,gender,sleepage5c,slpprdp,slpeffp,timest1p,timest2p,timest3p,timeremp,waso
0001,1,68,360,85.5,30,180,90,60,45
0002,2,72,300,110,20,160,70,50,60
`

const mesaActigraphyFixture = `mesaid,sleepmain,efficiency,activity
0001,420,88,245000
0001,380,82,198000
0001,405,90,221000
0002,350,75,150000
`

func writeMESAFixture(t *testing.T, withActigraphy bool) string {
	t.Helper()
	dataDir := t.TempDir()
	root := filepath.Join(dataDir, "nsrr_mesa")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "mesa-sleep-dataset-0.6.0.csv"), []byte(mesaSleepFixture), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if withActigraphy {
		if err := os.WriteFile(filepath.Join(root, "mesa-actigraphy-0.6.0.csv"), []byte(mesaActigraphyFixture), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dataDir
}

func TestMESAListSubjects(t *testing.T) {
	a := NewMESA(writeMESAFixture(t, true))
	if !a.IsAvailable() {
		t.Fatalf("expected available")
	}

	subjects := a.ListSubjects()
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}
	if subjects[0].ID != "0001" || subjects[0].DisplayName != "MESA-0001" {
		t.Fatalf("unexpected subject: %+v", subjects[0])
	}
}

func TestMESAPSGOnly(t *testing.T) {
	a := NewMESA(writeMESAFixture(t, false))

	records := a.LoadHealthData("0001")
	if len(records) != 1 {
		t.Fatalf("expected a single PSG night, got %d", len(records))
	}

	psg := records[0]
	if !psg.Date.Equal(time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected PSG anchored at the placeholder epoch, got %v", psg.Date)
	}
	if psg.SleepDuration == nil || *psg.SleepDuration != 6.0 {
		t.Fatalf("unexpected sleep duration: %v", psg.SleepDuration)
	}
	if psg.SleepScore == nil || *psg.SleepScore != 85 {
		t.Fatalf("unexpected sleep score: %v", psg.SleepScore)
	}
	if psg.DeepSleep == nil || *psg.DeepSleep != 1.5 {
		t.Fatalf("unexpected deep sleep: %v", psg.DeepSleep)
	}
	if psg.REMSleep == nil || *psg.REMSleep != 1.0 {
		t.Fatalf("unexpected REM: %v", psg.REMSleep)
	}
	// Light = N1 + N2 = 30 + 180 minutes.
	if psg.LightSleep == nil || *psg.LightSleep != 3.5 {
		t.Fatalf("unexpected light sleep: %v", psg.LightSleep)
	}
	if psg.AwakeTime == nil || *psg.AwakeTime != 0.75 {
		t.Fatalf("unexpected awake time: %v", psg.AwakeTime)
	}
}

func TestMESAEfficiencyClamped(t *testing.T) {
	a := NewMESA(writeMESAFixture(t, false))
	records := a.LoadHealthData("0002")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].SleepScore == nil || *records[0].SleepScore != 100 {
		t.Fatalf("expected over-100 efficiency clamped, got %v", records[0].SleepScore)
	}
}

func TestMESAConcatenatesActigraphy(t *testing.T) {
	a := NewMESA(writeMESAFixture(t, true))

	records := a.LoadHealthData("0001")
	// One PSG night plus three actigraphy days.
	if len(records) != 4 {
		t.Fatalf("expected 4 days, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i-1].Date.Before(records[i].Date) {
			t.Fatalf("records out of order")
		}
	}

	// Actigraphy days run sequentially after the epoch night.
	day2 := records[1]
	if !day2.Date.Equal(time.Date(2012, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first actigraphy date: %v", day2.Date)
	}
	if day2.SleepDuration == nil || *day2.SleepDuration != 7.0 {
		t.Fatalf("unexpected actigraphy sleep: %v", day2.SleepDuration)
	}
	if day2.Steps == nil || *day2.Steps != 245000 {
		t.Fatalf("unexpected activity count: %v", day2.Steps)
	}
	// Actigraphy carries no staging.
	if day2.DeepSleep != nil {
		t.Fatalf("expected missing staging on actigraphy days")
	}
}

func TestMESASubjectProfileFromSleepFile(t *testing.T) {
	a := NewMESA(writeMESAFixture(t, true))

	profile, ok := datasets.SubjectProfile(a, "0001")
	if !ok || profile == nil {
		t.Fatalf("expected a profile")
	}
	if profile.Age == nil || *profile.Age != 68 {
		t.Fatalf("unexpected age: %v", profile.Age)
	}
	if profile.Sex == nil || *profile.Sex != "male" {
		t.Fatalf("unexpected sex: %v", profile.Sex)
	}
}
