package labs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

func TestDefaultCatalogLookup(t *testing.T) {
	cat := DefaultCatalog()
	b, ok := cat.Lookup("LBXGLU")
	if !ok {
		t.Fatalf("expected LBXGLU in default catalog")
	}
	if b.Name != "glucose" || b.Unit != "mg/dL" {
		t.Fatalf("unexpected biomarker: %+v", b)
	}
	if _, ok := cat.Lookup("NOPE"); ok {
		t.Fatalf("expected unknown code to miss")
	}
}

func TestBiomarkerFlags(t *testing.T) {
	b := Biomarker{Name: "glucose", Unit: "mg/dL", RefLow: 70, RefHigh: 100}

	cases := []struct {
		value float64
		want  models.LabFlag
	}{
		{60, models.LabFlagLow},
		{70, models.LabFlagNormal},
		{85, models.LabFlagNormal},
		{100, models.LabFlagNormal},
		{126, models.LabFlagHigh},
	}
	for _, c := range cases {
		rec := b.Record(c.value)
		if rec.Flag != c.want {
			t.Fatalf("Record(%v).Flag = %q, want %q", c.value, rec.Flag, c.want)
		}
	}

	rec := b.Record(85)
	if rec.ReferenceRange != "70-100" {
		t.Fatalf("unexpected reference range %q", rec.ReferenceRange)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `biomarkers:
  LBXGLU:
    name: glucose
    unit: mg/dL
    ref_low: 70
    ref_high: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, ok := cat.Lookup("LBXGLU")
	if !ok || b.RefHigh != 100 {
		t.Fatalf("unexpected catalog contents: %+v", cat)
	}
}

func TestLoadEmptyPathFallsBack(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Biomarkers) == 0 {
		t.Fatalf("expected default catalog")
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("biomarkers: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an empty catalog")
	}
}
