// Package clinical holds adapters for cross-sectional clinical surveys.
package clinical

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/labs"
)

// Cross-sectional surveys list every participant of a cycle; the listing is
// truncated to this many subjects. Callers must not assume completeness
// beyond the cap.
const defaultSubjectCap = 100

// NHANES adapts the CDC National Health and Nutrition Examination Survey.
// NHANES is cross-sectional: it carries one lab snapshot per participant and
// no daily time series, so LoadHealthData returns an empty sequence by
// contract. The adapter's value is in lab data and subject profiles.
type NHANES struct {
	dataDir    string
	catalog    labs.Catalog
	subjectCap int
}

func NewNHANES(dataDir string) datasets.Adapter {
	return &NHANES{
		dataDir:    dataDir,
		catalog:    labs.DefaultCatalog(),
		subjectCap: defaultSubjectCap,
	}
}

// NewNHANESWithCatalog allows a custom biomarker catalog and listing cap.
// A cap of 0 keeps the default.
func NewNHANESWithCatalog(dataDir string, catalog labs.Catalog, subjectCap int) datasets.Adapter {
	if subjectCap <= 0 {
		subjectCap = defaultSubjectCap
	}
	return &NHANES{dataDir: dataDir, catalog: catalog, subjectCap: subjectCap}
}

func (a *NHANES) Metadata() models.DatasetMetadata {
	fields := make([]string, 0, len(a.catalog.Biomarkers))
	seen := make(map[string]bool)
	for _, b := range a.catalog.Biomarkers {
		if !seen[b.Name] {
			seen[b.Name] = true
			fields = append(fields, b.Name)
		}
	}
	return models.DatasetMetadata{
		ID:              "nhanes",
		Name:            "NHANES (CDC)",
		Description:     "National Health and Nutrition Examination Survey with comprehensive lab results, physical exams, and demographic data for 10,000+ participants per cycle.",
		Category:        models.CategoryClinical,
		SourceURL:       "https://www.cdc.gov/nchs/nhanes/",
		Citation:        "CDC/NCHS. National Health and Nutrition Examination Survey Data.",
		SubjectCount:    10000,
		DateRange:       "Multiple survey cycles (2017-2020 recommended)",
		SizeMB:          200,
		AvailableFields: fields,
		DownloadInstructions: "1. Visit https://wwwn.cdc.gov/nchs/nhanes/\n" +
			"2. Select survey cycle (e.g., 2017-2020)\n" +
			"3. Download: Demographics (DEMO), Lab (GLU, BIOPRO, CBC) XPT files\n" +
			"4. Convert XPT to CSV\n" +
			"5. Place files in data/datasets/nhanes/",
		RequiresAuth: false,
		License:      "Public Domain",
	}
}

func (a *NHANES) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *NHANES) findFile(pattern string) string {
	return datasets.FindGlob(a.path(),
		fmt.Sprintf("*%s*.csv", pattern),
		fmt.Sprintf("*%s*.csv", strings.ToLower(pattern)),
	)
}

func (a *NHANES) IsAvailable() bool {
	if !datasets.DirExists(a.path()) {
		return false
	}
	demo := a.findFile("DEMO")
	lab := a.findFile("GLU")
	if lab == "" {
		lab = a.findFile("BIOPRO")
	}
	return demo != "" && lab != ""
}

func (a *NHANES) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}
	demoFile := a.findFile("DEMO")
	if demoFile == "" {
		return []models.Subject{}
	}

	subjects := []models.Subject{}
	datasets.ForEachRow(demoFile, ',', func(row map[string]string) bool {
		seqn := datasets.RowValue(row, "SEQN")
		if seqn == "" {
			return true
		}
		meta := map[string]interface{}{
			"gender": parseGender(row["RIAGENDR"]),
		}
		if age := datasets.SafeInt(row["RIDAGEYR"]); age != nil {
			meta["age"] = *age
		}
		subjects = append(subjects, models.Subject{
			ID:          seqn,
			DisplayName: fmt.Sprintf("Subject %s", seqn),
			RecordCount: 1,
			Metadata:    meta,
		})
		return len(subjects) < a.subjectCap
	})
	return subjects
}

// LoadHealthData returns an empty sequence: cross-sectional datasets provide
// a single lab snapshot, not longitudinal daily records. Intentional, not a
// gap.
func (a *NHANES) LoadHealthData(subjectID string) []*models.DailyRecord {
	return []*models.DailyRecord{}
}

func (a *NHANES) LoadLabData(subjectID string) []models.LabRecord {
	if !a.IsAvailable() {
		return nil
	}

	values := make(map[string]float64)
	for _, pattern := range []string{"GLU", "BIOPRO", "CBC"} {
		if file := a.findFile(pattern); file != "" {
			a.collectLabValues(file, subjectID, values)
		}
	}
	if len(values) == 0 {
		return nil
	}

	records := make([]models.LabRecord, 0, len(values))
	for code, value := range values {
		biomarker, ok := a.catalog.Lookup(code)
		if !ok {
			continue
		}
		rec := biomarker.Record(value)
		// NHANES publishes no collection dates.
		rec.Date = datasets.DateOf(time.Now().UTC())
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil
	}
	return records
}

func (a *NHANES) collectLabValues(path, subjectID string, out map[string]float64) {
	datasets.ForEachRow(path, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "SEQN") != subjectID {
			return true
		}
		for col, raw := range row {
			if !strings.HasPrefix(col, "LBX") && !strings.HasPrefix(col, "LBD") {
				continue
			}
			if v := datasets.SafeFloat(raw); v != nil {
				out[col] = *v
			}
		}
		return false
	})
}

func (a *NHANES) SubjectProfile(subjectID string) *models.SubjectProfile {
	if !a.IsAvailable() {
		return nil
	}
	demoFile := a.findFile("DEMO")
	if demoFile == "" {
		return nil
	}

	var profile *models.SubjectProfile
	datasets.ForEachRow(demoFile, ',', func(row map[string]string) bool {
		if datasets.RowValue(row, "SEQN") != subjectID {
			return true
		}
		profile = &models.SubjectProfile{
			Age:      datasets.SafeInt(row["RIDAGEYR"]),
			HeightCM: datasets.SafeFloat(row["BMXHT"]),
			WeightKG: datasets.SafeFloat(row["BMXWT"]),
		}
		if sex := parseSex(row["RIAGENDR"]); sex != "" {
			profile.Sex = models.Str(sex)
		}
		return false
	})
	return profile
}

func parseGender(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return "Male"
	case "2":
		return "Female"
	}
	return "Unknown"
}

func parseSex(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return "male"
	case "2":
		return "female"
	}
	return ""
}
