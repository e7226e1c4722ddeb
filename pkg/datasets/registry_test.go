package datasets

import (
	"testing"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

type stubAdapter struct {
	id        string
	category  models.DataCategory
	available bool
	dataDir   string
}

func (s *stubAdapter) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{ID: s.id, Name: s.id, Category: s.category}
}

func (s *stubAdapter) IsAvailable() bool { return s.available }

func (s *stubAdapter) ListSubjects() []models.Subject { return nil }

func (s *stubAdapter) LoadHealthData(subjectID string) []*models.DailyRecord { return nil }

func stubFactory(id string, category models.DataCategory, available bool) Factory {
	return func(dataDir string) Adapter {
		return &stubAdapter{id: id, category: category, available: available, dataDir: dataDir}
	}
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	r := NewRegistry("data")
	if err := r.Register(stubFactory("alpha", models.CategoryWearables, true)); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(stubFactory("alpha", models.CategoryClinical, true)); err == nil {
		t.Fatalf("expected duplicate id to be rejected")
	}
}

func TestRegistryRejectsEmptyID(t *testing.T) {
	r := NewRegistry("data")
	if err := r.Register(stubFactory("", models.CategoryWearables, true)); err == nil {
		t.Fatalf("expected empty id to be rejected")
	}
}

func TestRegistryGetCachesInstance(t *testing.T) {
	r := NewRegistry("data")
	r.MustRegister(stubFactory("alpha", models.CategoryWearables, true))

	first := r.Get("alpha")
	second := r.Get("alpha")
	if first == nil || first != second {
		t.Fatalf("expected the same cached instance on repeated Get")
	}
	if r.Get("missing") != nil {
		t.Fatalf("expected nil for an unknown id")
	}
}

func TestRegistrySetDataDirInvalidatesCache(t *testing.T) {
	r := NewRegistry("old")
	r.MustRegister(stubFactory("alpha", models.CategoryWearables, true))

	before := r.Get("alpha")
	r.SetDataDir("new")
	after := r.Get("alpha")

	if before == after {
		t.Fatalf("expected a fresh instance after SetDataDir")
	}
	if got := after.(*stubAdapter).dataDir; got != "new" {
		t.Fatalf("expected new instance rooted at %q, got %q", "new", got)
	}
}

func TestRegistryListAllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry("data")
	r.MustRegister(stubFactory("charlie", models.CategoryWearables, true))
	r.MustRegister(stubFactory("alpha", models.CategoryClinical, false))
	r.MustRegister(stubFactory("bravo", models.CategorySleep, true))

	metas := r.ListAll()
	want := []string{"charlie", "alpha", "bravo"}
	if len(metas) != len(want) {
		t.Fatalf("expected %d datasets, got %d", len(want), len(metas))
	}
	for i, id := range want {
		if metas[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, metas[i].ID)
		}
	}
}

func TestRegistryFilters(t *testing.T) {
	r := NewRegistry("data")
	r.MustRegister(stubFactory("watch", models.CategoryWearables, true))
	r.MustRegister(stubFactory("labs", models.CategoryClinical, false))
	r.MustRegister(stubFactory("psg", models.CategorySleep, true))

	wearables := r.ListByCategory(models.CategoryWearables)
	if len(wearables) != 1 || wearables[0].ID != "watch" {
		t.Fatalf("unexpected category filter result: %+v", wearables)
	}

	ids := r.AvailableIDs()
	if len(ids) != 2 || ids[0] != "watch" || ids[1] != "psg" {
		t.Fatalf("unexpected available ids: %v", ids)
	}
}

func TestRegisterDefaultsSkipsExisting(t *testing.T) {
	r := NewRegistry("data")
	r.MustRegister(stubFactory("alpha", models.CategoryWearables, true))

	r.RegisterDefaults(
		stubFactory("alpha", models.CategoryClinical, false),
		stubFactory("bravo", models.CategorySleep, true),
	)
	r.RegisterDefaults(stubFactory("bravo", models.CategorySleep, true))

	metas := r.ListAll()
	if len(metas) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(metas))
	}
	// The pre-existing registration wins.
	if metas[0].Category != models.CategoryWearables {
		t.Fatalf("expected original alpha registration to survive")
	}
}

func TestDispatchUnsupportedCapability(t *testing.T) {
	adapter := &stubAdapter{id: "alpha"}

	if _, ok := LoadLabData(adapter, "s1"); ok {
		t.Fatalf("expected lab data to be unsupported")
	}
	if _, ok := LoadGeneticData(adapter, "s1"); ok {
		t.Fatalf("expected genetic data to be unsupported")
	}
	if _, ok := LoadWorkouts(adapter, "s1"); ok {
		t.Fatalf("expected workouts to be unsupported")
	}
	if _, ok := SubjectProfile(adapter, "s1"); ok {
		t.Fatalf("expected profile to be unsupported")
	}
}
