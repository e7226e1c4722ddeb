// Package genetics holds adapters for genomic sample-sheet datasets.
package genetics

import (
	"hash/fnv"
	"math"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
)

// Listing cap for the 3,202-sample sheet. Callers must not assume
// completeness beyond it.
const defaultSubjectCap = 200

// populationInfo names a 1000 Genomes population code and its ancestry
// region.
type populationInfo struct {
	name   string
	region string
}

var populationAncestry = map[string]populationInfo{
	// African
	"YRI": {"Yoruba in Ibadan, Nigeria", "African"},
	"LWK": {"Luhya in Webuye, Kenya", "African"},
	"GWD": {"Gambian in Western Divisions", "African"},
	"MSL": {"Mende in Sierra Leone", "African"},
	"ESN": {"Esan in Nigeria", "African"},
	"ASW": {"African Ancestry in SW USA", "African"},
	"ACB": {"African Caribbean in Barbados", "African"},
	// European
	"CEU": {"Utah residents, N/W European", "European"},
	"TSI": {"Toscani in Italia", "European"},
	"FIN": {"Finnish in Finland", "European"},
	"GBR": {"British in England/Scotland", "European"},
	"IBS": {"Iberian Population in Spain", "European"},
	// East Asian
	"CHB": {"Han Chinese in Beijing", "East Asian"},
	"JPT": {"Japanese in Tokyo", "East Asian"},
	"CHS": {"Southern Han Chinese", "East Asian"},
	"CDX": {"Chinese Dai in Xishuangbanna", "East Asian"},
	"KHV": {"Kinh in Ho Chi Minh City", "East Asian"},
	// South Asian
	"GIH": {"Gujarati Indians in Houston", "South Asian"},
	"PJL": {"Punjabi from Lahore, Pakistan", "South Asian"},
	"BEB": {"Bengali from Bangladesh", "South Asian"},
	"STU": {"Sri Lankan Tamil from UK", "South Asian"},
	"ITU": {"Indian Telugu from UK", "South Asian"},
	// Americas
	"MXL": {"Mexican Ancestry in LA", "Americas"},
	"PUR": {"Puerto Ricans from PR", "Americas"},
	"CLM": {"Colombians from Medellin", "Americas"},
	"PEL": {"Peruvians from Lima", "Americas"},
}

// Base ancestry percentage templates per super-population; perturbed by a
// seeded variation and renormalized to 100.
var baseCompositions = map[string]map[string]float64{
	"AFR": {"African": 0.85, "European": 0.10, "Other": 0.05},
	"EUR": {"European": 0.90, "Middle Eastern": 0.05, "Other": 0.05},
	"EAS": {"East Asian": 0.90, "Southeast Asian": 0.07, "Other": 0.03},
	"SAS": {"South Asian": 0.85, "Central Asian": 0.10, "Other": 0.05},
	"AMR": {"Indigenous American": 0.40, "European": 0.35, "African": 0.20, "Other": 0.05},
}

// ThousandGenomes adapts the 1000 Genomes Project sample sheet. It supplies
// no daily health data; its value is the genetic profile synthesized from
// the subject's self-reported population code.
type ThousandGenomes struct {
	dataDir    string
	subjectCap int
}

func NewThousandGenomes(dataDir string) datasets.Adapter {
	return &ThousandGenomes{dataDir: dataDir, subjectCap: defaultSubjectCap}
}

func (a *ThousandGenomes) Metadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		ID:           "thousand_genomes",
		Name:         "1000 Genomes Project",
		Description:  "3,202 individuals from 26 global populations with whole genome sequencing, ancestry, and sample metadata.",
		Category:     models.CategoryGenetics,
		SourceURL:    "https://www.internationalgenome.org/data/",
		Citation:     "The 1000 Genomes Project Consortium. Nature 526, 68-74 (2015).",
		SubjectCount: 3202,
		DateRange:    "Phase 3 (2015)",
		SizeMB:       50,
		AvailableFields: []string{
			"ancestry", "population", "super_population", "sex",
		},
		DownloadInstructions: "1. Download sample metadata from ftp://ftp.1000genomes.ebi.ac.uk/vol1/ftp/release/20130502/\n" +
			"2. Get igsr_samples.tsv from https://www.internationalgenome.org/data-portal/sample\n" +
			"3. Place files in data/datasets/thousand_genomes/",
		RequiresAuth: false,
		License:      "Fort Lauderdale Agreement (Open Access)",
	}
}

func (a *ThousandGenomes) path() string {
	return filepath.Join(a.dataDir, a.Metadata().ID)
}

func (a *ThousandGenomes) sampleFile() string {
	return datasets.FindGlob(a.path(), "*samples*.tsv", "*samples*.csv", "*.panel")
}

func (a *ThousandGenomes) IsAvailable() bool {
	return datasets.DirExists(a.path()) && a.sampleFile() != ""
}

func sampleDelimiter(path string) rune {
	switch filepath.Ext(path) {
	case ".tsv", ".panel":
		return '\t'
	}
	return ','
}

func (a *ThousandGenomes) ListSubjects() []models.Subject {
	if !a.IsAvailable() {
		return []models.Subject{}
	}
	sampleFile := a.sampleFile()

	subjects := []models.Subject{}
	datasets.ForEachRow(sampleFile, sampleDelimiter(sampleFile), func(row map[string]string) bool {
		sampleID := datasets.RowValue(row, "Sample name", "sample", "Sample", "SAMPLE")
		if sampleID == "" {
			return true
		}
		pop := datasets.RowValue(row, "Population code", "pop", "population")
		sex := datasets.RowValue(row, "Sex", "sex", "gender")

		popName := pop
		if info, ok := populationAncestry[pop]; ok {
			popName = info.name
		}

		meta := map[string]interface{}{
			"population":      pop,
			"population_name": popName,
		}
		if sex != "" {
			meta["sex"] = strings.ToLower(sex)
		}

		subjects = append(subjects, models.Subject{
			ID:          sampleID,
			DisplayName: sampleID,
			RecordCount: 1,
			Metadata:    meta,
		})
		return len(subjects) < a.subjectCap
	})
	return subjects
}

// LoadHealthData returns an empty sequence: genomic sample sheets carry no
// wearable-style time series.
func (a *ThousandGenomes) LoadHealthData(subjectID string) []*models.DailyRecord {
	return []*models.DailyRecord{}
}

func (a *ThousandGenomes) LoadGeneticData(subjectID string) *models.GeneticProfile {
	if !a.IsAvailable() {
		return nil
	}
	sampleFile := a.sampleFile()

	var profile *models.GeneticProfile
	datasets.ForEachRow(sampleFile, sampleDelimiter(sampleFile), func(row map[string]string) bool {
		sampleID := datasets.RowValue(row, "Sample name", "sample", "Sample")
		if sampleID != subjectID {
			return true
		}
		pop := datasets.RowValue(row, "Population code", "pop")
		superPop := datasets.RowValue(row, "Superpopulation code", "super_pop")

		profile = &models.GeneticProfile{
			Population:      pop,
			SuperPopulation: superPop,
			Ancestry:        SynthesizeAncestry(pop, superPop),
			DiseaseRisks:    []models.DiseaseRisk{}, // would need VCF analysis
			CarrierStatuses: []models.CarrierStatus{},
			DrugResponses:   []models.DrugResponse{},
			Traits:          []models.GeneticTrait{},
		}
		return false
	})
	return profile
}

// SynthesizeAncestry derives an ancestry composition from a population code:
// the super-population base template perturbed by a seeded random variation
// (seed = stable hash of the population code), renormalized to sum to 100.
// Determinism is a hard contract: the same code always yields bit-identical
// percentages across runs.
func SynthesizeAncestry(pop, superPop string) models.AncestryComposition {
	base, ok := baseCompositions[superPop]
	if !ok {
		return models.AncestryComposition{"Unknown": 100.0}
	}

	h := fnv.New64a()
	h.Write([]byte(pop))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	regions := make([]string, 0, len(base))
	for region := range base {
		regions = append(regions, region)
	}
	// Map iteration order is random; draw variations in sorted-region order
	// so the seeded stream is reproducible.
	sort.Strings(regions)

	varied := make(map[string]float64, len(base))
	total := 0.0
	for _, region := range regions {
		pct := base[region] + (rng.Float64()*0.10 - 0.05)
		if pct < 0 {
			pct = 0
		}
		varied[region] = pct
		total += pct
	}

	composition := make(models.AncestryComposition, len(varied))
	for region, pct := range varied {
		composition[region] = math.Round(pct/total*1000) / 10
	}
	return composition
}

func (a *ThousandGenomes) SubjectProfile(subjectID string) *models.SubjectProfile {
	if !a.IsAvailable() {
		return nil
	}
	sampleFile := a.sampleFile()

	var profile *models.SubjectProfile
	datasets.ForEachRow(sampleFile, sampleDelimiter(sampleFile), func(row map[string]string) bool {
		sampleID := datasets.RowValue(row, "Sample name", "sample")
		if sampleID != subjectID {
			return true
		}
		profile = &models.SubjectProfile{}
		if sex := datasets.RowValue(row, "Sex", "sex"); sex != "" {
			profile.Sex = models.Str(strings.ToLower(sex))
		}
		return false
	})
	return profile
}
