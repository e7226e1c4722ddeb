package models

import "time"

// Genetic profile shapes. These mirror the output contract of the genomic
// adapters and the synthetic generator; every enumeration is closed.

type GeneticVariant struct {
	RSID         string `json:"rsid"`
	Gene         string `json:"gene"`
	Genotype     string `json:"genotype"`
	Effect       string `json:"effect"`
	Significance string `json:"significance"` // beneficial, neutral, risk, pathogenic
}

type DiseaseRisk struct {
	Condition           string           `json:"condition"`
	Category            string           `json:"category"` // cardiovascular, metabolic, neurological, cancer, autoimmune, other
	RiskScore           float64          `json:"risk_score"` // 0.0-1.0, 0.5 is population average
	RiskLevel           string           `json:"risk_level"` // low, average, elevated, high
	Percentile          int              `json:"percentile"`
	VariantsAnalyzed    int              `json:"variants_analyzed"`
	KeyVariants         []GeneticVariant `json:"key_variants,omitempty"`
	LifestyleModifiable bool             `json:"lifestyle_modifiable"`
	Description         string           `json:"description"`
}

type CarrierStatus struct {
	Condition   string `json:"condition"`
	Status      string `json:"status"` // not_carrier, carrier, affected
	Gene        string `json:"gene"`
	Inheritance string `json:"inheritance"` // autosomal_recessive, x_linked
	Prevalence  string `json:"prevalence"`
	Description string `json:"description"`
}

// DrugResponse is a pharmacogenomic prediction of how a subject metabolizes
// a drug.
type DrugResponse struct {
	Drug                 string `json:"drug"`
	DrugClass            string `json:"drug_class"`
	Gene                 string `json:"gene"`
	MetabolizerStatus    string `json:"metabolizer_status"` // poor, intermediate, normal, rapid, ultra_rapid
	Recommendation       string `json:"recommendation"`
	ClinicalSignificance string `json:"clinical_significance"` // actionable, informative
}

type GeneticTrait struct {
	Trait       string `json:"trait"`
	Category    string `json:"category"` // nutrition, fitness, sleep, appearance, sensory
	Prediction  string `json:"prediction"`
	Confidence  string `json:"confidence"` // high, moderate, low
	Description string `json:"description"`
}

// AncestryComposition maps ancestry region to percentage; percentages sum
// to 100.
type AncestryComposition map[string]float64

type GeneticProfile struct {
	Population      string              `json:"population,omitempty"`
	SuperPopulation string              `json:"super_population,omitempty"`
	SequencingType  string              `json:"sequencing_type,omitempty"` // whole_genome, whole_exome, genotyping_array
	SequencingDate  time.Time           `json:"sequencing_date,omitempty"`
	VariantsTotal   int                 `json:"variants_analyzed,omitempty"`
	Ancestry        AncestryComposition `json:"ancestry"`
	DiseaseRisks    []DiseaseRisk       `json:"disease_risks"`
	CarrierStatuses []CarrierStatus     `json:"carrier_status"`
	DrugResponses   []DrugResponse      `json:"drug_responses"`
	Traits          []GeneticTrait      `json:"traits"`
}
