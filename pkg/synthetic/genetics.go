// Package synthetic generates demo data: a patient with daily health
// records, labs, and workouts, plus a full genetic profile. The demo dataset
// path of the loader delegates here; no adapter or registry is involved.
package synthetic

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

type diseaseDef struct {
	condition  string
	category   string
	modifiable bool
	desc       string
}

var diseaseDefs = []diseaseDef{
	{"Coronary Artery Disease", "cardiovascular", true, "Risk of plaque buildup in heart arteries"},
	{"Atrial Fibrillation", "cardiovascular", true, "Risk of irregular heart rhythm"},
	{"Venous Thromboembolism", "cardiovascular", true, "Risk of blood clots in veins"},
	{"Type 2 Diabetes", "metabolic", true, "Risk of insulin resistance and high blood sugar"},
	{"Obesity", "metabolic", true, "Genetic predisposition to weight gain"},
	{"Alzheimer's Disease", "neurological", true, "Risk of late-onset cognitive decline"},
	{"Parkinson's Disease", "neurological", false, "Risk of movement disorder"},
	{"Breast Cancer", "cancer", true, "Polygenic risk for breast cancer"},
	{"Prostate Cancer", "cancer", true, "Polygenic risk for prostate cancer"},
	{"Colorectal Cancer", "cancer", true, "Risk of colon or rectal cancer"},
	{"Celiac Disease", "autoimmune", true, "Risk of gluten sensitivity"},
	{"Rheumatoid Arthritis", "autoimmune", false, "Risk of inflammatory joint disease"},
	{"Age-Related Macular Degeneration", "other", true, "Risk of vision loss with age"},
	{"Osteoporosis", "other", true, "Risk of bone density loss"},
}

type carrierDef struct {
	condition   string
	gene        string
	inheritance string
	prevalence  string
	desc        string
}

var carrierDefs = []carrierDef{
	{"Cystic Fibrosis", "CFTR", "autosomal_recessive", "1 in 25", "Affects lungs and digestive system"},
	{"Sickle Cell Anemia", "HBB", "autosomal_recessive", "1 in 12 (African ancestry)", "Affects red blood cell shape"},
	{"Tay-Sachs Disease", "HEXA", "autosomal_recessive", "1 in 30 (Ashkenazi Jewish)", "Progressive neurological disorder"},
	{"Phenylketonuria (PKU)", "PAH", "autosomal_recessive", "1 in 50", "Inability to metabolize phenylalanine"},
	{"Hereditary Hemochromatosis", "HFE", "autosomal_recessive", "1 in 10", "Iron overload disorder"},
	{"Alpha-1 Antitrypsin Deficiency", "SERPINA1", "autosomal_recessive", "1 in 25", "Affects lungs and liver"},
	{"Spinal Muscular Atrophy", "SMN1", "autosomal_recessive", "1 in 50", "Progressive muscle weakness"},
	{"MCAD Deficiency", "ACADM", "autosomal_recessive", "1 in 50", "Fatty acid oxidation disorder"},
}

type drugDef struct {
	drug         string
	class        string
	gene         string
	significance string
}

var drugDefs = []drugDef{
	{"Codeine", "Opioid Analgesic", "CYP2D6", "actionable"},
	{"Tramadol", "Opioid Analgesic", "CYP2D6", "actionable"},
	{"Clopidogrel (Plavix)", "Antiplatelet", "CYP2C19", "actionable"},
	{"Warfarin", "Anticoagulant", "CYP2C9/VKORC1", "actionable"},
	{"Simvastatin", "Statin", "SLCO1B1", "actionable"},
	{"Citalopram (Celexa)", "SSRI Antidepressant", "CYP2C19", "actionable"},
	{"Sertraline (Zoloft)", "SSRI Antidepressant", "CYP2C19", "informative"},
	{"Omeprazole (Prilosec)", "Proton Pump Inhibitor", "CYP2C19", "informative"},
	{"Caffeine", "Stimulant", "CYP1A2", "informative"},
	{"Metformin", "Antidiabetic", "SLC22A1", "informative"},
}

var metabolizerRecommendations = map[string]string{
	"poor":         "Consider alternative medication or reduced dose",
	"intermediate": "Standard dose may need adjustment",
	"normal":       "Standard dosing expected to be effective",
	"rapid":        "May require higher dose for therapeutic effect",
	"ultra_rapid":  "Increased risk of side effects; consider alternative",
}

type traitDef struct {
	trait        string
	category     string
	options      []string
	descriptions []string
}

var traitDefs = []traitDef{
	{"Caffeine Metabolism", "nutrition",
		[]string{"Fast metabolizer", "Slow metabolizer"},
		[]string{"Can consume caffeine later in day without sleep impact", "Caffeine stays in system longer; avoid after noon"}},
	{"Lactose Tolerance", "nutrition",
		[]string{"Likely tolerant", "Likely intolerant"},
		[]string{"Can digest dairy products normally", "May experience digestive issues with dairy"}},
	{"Alcohol Flush Reaction", "nutrition",
		[]string{"Normal metabolism", "Flush reaction likely"},
		[]string{"Metabolizes alcohol normally", "May experience facial flushing after alcohol"}},
	{"Bitter Taste Perception", "sensory",
		[]string{"Taster", "Non-taster"},
		[]string{"Sensitive to bitter compounds like in broccoli", "Less sensitive to bitter tastes"}},
	{"Muscle Fiber Composition", "fitness",
		[]string{"Endurance-oriented", "Power-oriented", "Mixed"},
		[]string{"More slow-twitch fibers; suits endurance sports", "More fast-twitch fibers; suits power sports", "Balanced fiber composition"}},
	{"VO2 Max Trainability", "fitness",
		[]string{"High responder", "Normal responder", "Low responder"},
		[]string{"Cardiovascular fitness improves quickly with training", "Standard improvement with training", "May need more training for cardiovascular gains"}},
	{"Chronotype", "sleep",
		[]string{"Morning person", "Evening person", "Intermediate"},
		[]string{"Natural tendency to wake early", "Natural tendency toward later schedule", "Flexible sleep schedule"}},
	{"Sleep Depth", "sleep",
		[]string{"Deep sleeper", "Light sleeper"},
		[]string{"Less likely to be disturbed during sleep", "More sensitive to disturbances during sleep"}},
	{"Male Pattern Baldness", "appearance",
		[]string{"Lower likelihood", "Average likelihood", "Higher likelihood"},
		[]string{"Less genetic predisposition", "Average genetic predisposition", "Higher genetic predisposition"}},
	{"Freckling", "appearance",
		[]string{"Likely to freckle", "Unlikely to freckle"},
		[]string{"Genetic tendency toward freckling", "Less likely to develop freckles"}},
}

var ancestryTemplates = []map[string]float64{
	{"European": 0.85, "East Asian": 0.05, "African": 0.03, "Native American": 0.02, "Middle Eastern": 0.03, "South Asian": 0.02},
	{"European": 0.55, "Native American": 0.25, "African": 0.10, "East Asian": 0.05, "Middle Eastern": 0.03, "South Asian": 0.02},
	{"African": 0.75, "European": 0.20, "Native American": 0.03, "East Asian": 0.01, "Middle Eastern": 0.01},
	{"East Asian": 0.90, "Southeast Asian": 0.05, "European": 0.03, "South Asian": 0.02},
	{"South Asian": 0.88, "Middle Eastern": 0.05, "Central Asian": 0.04, "European": 0.03},
	{"European": 0.40, "African": 0.30, "East Asian": 0.15, "Native American": 0.10, "Middle Eastern": 0.05},
}

var genes = []string{"APOE", "MTHFR", "FTO", "TCF7L2", "BRCA1", "LDLR", "ACE", "COMT"}
var genotypes = []string{"A/A", "A/G", "G/G", "C/C", "C/T", "T/T"}
var variantEffects = []string{"increased risk", "decreased risk", "typical"}

// GenerateGeneticProfile builds a full demo genetic profile from the given
// source of randomness.
func GenerateGeneticProfile(rng *rand.Rand) *models.GeneticProfile {
	sequencingTypes := []string{"whole_genome", "whole_exome", "genotyping_array"}
	seqType := sequencingTypes[rng.Intn(len(sequencingTypes))]
	var variants int
	switch seqType {
	case "whole_genome":
		variants = 4000000 + rng.Intn(1000000)
	case "whole_exome":
		variants = 50000 + rng.Intn(30000)
	default:
		variants = 500000 + rng.Intn(200000)
	}

	now := time.Now().UTC()
	return &models.GeneticProfile{
		SequencingType: seqType,
		SequencingDate: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		VariantsTotal:  variants,
		Ancestry:       generateAncestry(rng),
		DiseaseRisks:   generateDiseaseRisks(rng),
		CarrierStatuses: generateCarrierStatuses(rng),
		DrugResponses:  generateDrugResponses(rng),
		Traits:         generateTraits(rng),
	}
}

func generateDiseaseRisks(rng *rand.Rand) []models.DiseaseRisk {
	risks := make([]models.DiseaseRisk, 0, len(diseaseDefs))
	for _, def := range diseaseDefs {
		score := rng.NormFloat64()*0.2 + 0.5
		if score < 0.05 {
			score = 0.05
		}
		if score > 0.95 {
			score = 0.95
		}

		level := "high"
		switch {
		case score < 0.3:
			level = "low"
		case score < 0.6:
			level = "average"
		case score < 0.8:
			level = "elevated"
		}

		numVariants := 2 + rng.Intn(4)
		keyVariants := make([]models.GeneticVariant, 0, numVariants)
		for i := 0; i < numVariants; i++ {
			keyVariants = append(keyVariants, models.GeneticVariant{
				RSID:         fmt.Sprintf("rs%d", 1000000+rng.Intn(99000000)),
				Gene:         genes[rng.Intn(len(genes))],
				Genotype:     genotypes[rng.Intn(len(genotypes))],
				Effect:       variantEffects[rng.Intn(len(variantEffects))],
				Significance: weightedChoice(rng, []string{"beneficial", "neutral", "risk"}, []float64{0.2, 0.5, 0.3}),
			})
		}

		risks = append(risks, models.DiseaseRisk{
			Condition:           def.condition,
			Category:            def.category,
			RiskScore:           float64(int(score*1000)) / 1000,
			RiskLevel:           level,
			Percentile:          int(score * 100),
			VariantsAnalyzed:    50 + rng.Intn(451),
			KeyVariants:         keyVariants,
			LifestyleModifiable: def.modifiable,
			Description:         def.desc,
		})
	}
	return risks
}

func generateCarrierStatuses(rng *rand.Rand) []models.CarrierStatus {
	statuses := make([]models.CarrierStatus, 0, len(carrierDefs))
	for _, def := range carrierDefs {
		status := weightedChoice(rng, []string{"not_carrier", "carrier"}, []float64{0.92, 0.08})
		statuses = append(statuses, models.CarrierStatus{
			Condition:   def.condition,
			Status:      status,
			Gene:        def.gene,
			Inheritance: def.inheritance,
			Prevalence:  def.prevalence,
			Description: def.desc,
		})
	}
	return statuses
}

func generateDrugResponses(rng *rand.Rand) []models.DrugResponse {
	metabolizers := []string{"poor", "intermediate", "normal", "rapid", "ultra_rapid"}
	weights := []float64{0.05, 0.15, 0.55, 0.15, 0.10}

	responses := make([]models.DrugResponse, 0, len(drugDefs))
	for _, def := range drugDefs {
		status := weightedChoice(rng, metabolizers, weights)
		responses = append(responses, models.DrugResponse{
			Drug:                 def.drug,
			DrugClass:            def.class,
			Gene:                 def.gene,
			MetabolizerStatus:    status,
			Recommendation:       metabolizerRecommendations[status],
			ClinicalSignificance: def.significance,
		})
	}
	return responses
}

func generateTraits(rng *rand.Rand) []models.GeneticTrait {
	confidences := []string{"high", "moderate", "moderate", "high"}
	traits := make([]models.GeneticTrait, 0, len(traitDefs))
	for _, def := range traitDefs {
		idx := rng.Intn(len(def.options))
		traits = append(traits, models.GeneticTrait{
			Trait:       def.trait,
			Category:    def.category,
			Prediction:  def.options[idx],
			Confidence:  confidences[rng.Intn(len(confidences))],
			Description: def.descriptions[idx],
		})
	}
	return traits
}

func generateAncestry(rng *rand.Rand) models.AncestryComposition {
	template := ancestryTemplates[rng.Intn(len(ancestryTemplates))]

	regions := make([]string, 0, len(template))
	for region := range template {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	composition := make(models.AncestryComposition, len(regions))
	total := 0.0
	for i, region := range regions {
		var pct float64
		if i == len(regions)-1 {
			pct = 1.0 - total
		} else {
			pct = template[region] + (rng.Float64()*0.06 - 0.03)
			if pct < 0 {
				pct = 0
			}
		}
		total += pct
		if pct > 0.01 {
			composition[region] = float64(int(pct*1000)) / 10
		}
	}
	return composition
}

func weightedChoice(rng *rand.Rand, options []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return options[i]
		}
		r -= w
	}
	return options[len(options)-1]
}
