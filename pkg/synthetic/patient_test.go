package synthetic

import (
	"math/rand"
	"testing"
)

func TestGeneratePatientDeterministicWithSeed(t *testing.T) {
	a := GeneratePatient(7)
	b := GeneratePatient(7)

	if *a.Profile.Age != *b.Profile.Age || *a.Profile.Sex != *b.Profile.Sex {
		t.Fatalf("expected identical profiles for the same seed")
	}
	if len(a.HealthData) != len(b.HealthData) {
		t.Fatalf("expected identical series lengths")
	}
	for i := range a.HealthData {
		if *a.HealthData[i].Steps != *b.HealthData[i].Steps {
			t.Fatalf("day %d: steps diverge for the same seed", i)
		}
	}
	if len(a.LabData) != len(b.LabData) || a.LabData[0].Value != b.LabData[0].Value {
		t.Fatalf("expected identical lab panels for the same seed")
	}
}

func TestGeneratePatientSeriesShape(t *testing.T) {
	p := GeneratePatient(42)

	if len(p.HealthData) != demoDays {
		t.Fatalf("expected %d days, got %d", demoDays, len(p.HealthData))
	}
	for i := 1; i < len(p.HealthData); i++ {
		if !p.HealthData[i-1].Date.Before(p.HealthData[i].Date) {
			t.Fatalf("series out of order at day %d", i)
		}
	}

	// The demo series populates every wearable-style field.
	rec := p.HealthData[0]
	if rec.SleepDuration == nil || rec.SleepScore == nil || rec.DeepSleep == nil ||
		rec.RestingHR == nil || rec.HRV == nil || rec.Steps == nil ||
		rec.ActiveCalories == nil || rec.ReadinessScore == nil || rec.RecoveryScore == nil {
		t.Fatalf("expected fully populated demo record: %+v", rec)
	}
	if *rec.SleepDuration < 4.5 || *rec.SleepDuration > 10.5 {
		t.Fatalf("sleep duration out of bounds: %v", *rec.SleepDuration)
	}
	if *rec.Steps < 1000 || *rec.Steps > 25000 {
		t.Fatalf("steps out of bounds: %v", *rec.Steps)
	}
}

func TestGeneratePatientLabPanel(t *testing.T) {
	p := GeneratePatient(42)
	if len(p.LabData) == 0 {
		t.Fatalf("expected a lab panel")
	}
	for _, rec := range p.LabData {
		if rec.Name == "" || rec.Unit == "" || rec.ReferenceRange == "" {
			t.Fatalf("incomplete lab record: %+v", rec)
		}
		if rec.Flag == "" {
			t.Fatalf("expected every lab value flagged: %+v", rec)
		}
	}
}

func TestGenerateGeneticProfileShape(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := GenerateGeneticProfile(rng)

	if len(g.DiseaseRisks) != len(diseaseDefs) {
		t.Fatalf("expected %d disease risks, got %d", len(diseaseDefs), len(g.DiseaseRisks))
	}
	for _, risk := range g.DiseaseRisks {
		if risk.RiskScore < 0.05 || risk.RiskScore > 0.95 {
			t.Fatalf("risk score out of bounds: %+v", risk)
		}
		if risk.RiskLevel == "" {
			t.Fatalf("expected a risk level: %+v", risk)
		}
	}
	if len(g.CarrierStatuses) != len(carrierDefs) {
		t.Fatalf("expected %d carrier statuses, got %d", len(carrierDefs), len(g.CarrierStatuses))
	}
	if len(g.DrugResponses) != len(drugDefs) {
		t.Fatalf("expected %d drug responses, got %d", len(drugDefs), len(g.DrugResponses))
	}
	if len(g.Traits) != len(traitDefs) {
		t.Fatalf("expected %d traits, got %d", len(traitDefs), len(g.Traits))
	}
	if len(g.Ancestry) == 0 {
		t.Fatalf("expected an ancestry composition")
	}
}
