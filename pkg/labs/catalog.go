// Package labs maps laboratory variable codes to display names, units, and
// reference intervals, and derives low/normal/high flags.
package labs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"gopkg.in/yaml.v3"
)

type Biomarker struct {
	Name    string  `yaml:"name" json:"name"`
	Unit    string  `yaml:"unit" json:"unit"`
	RefLow  float64 `yaml:"ref_low" json:"ref_low"`
	RefHigh float64 `yaml:"ref_high" json:"ref_high"`
}

// Catalog maps source variable codes (e.g. NHANES LBX* codes) to biomarker
// definitions.
type Catalog struct {
	Biomarkers map[string]Biomarker `yaml:"biomarkers" json:"biomarkers"`
}

// Load reads a catalog from a YAML file, falling back to the compiled-in
// defaults when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Biomarkers) == 0 {
		return Catalog{}, fmt.Errorf("lab catalog empty")
	}
	return cat, nil
}

func (c Catalog) Lookup(code string) (Biomarker, bool) {
	b, ok := c.Biomarkers[code]
	return b, ok
}

// Record builds a lab record for a measured value, flagging it against the
// biomarker's reference interval.
func (b Biomarker) Record(value float64) models.LabRecord {
	flag := models.LabFlagNormal
	if value < b.RefLow {
		flag = models.LabFlagLow
	} else if value > b.RefHigh {
		flag = models.LabFlagHigh
	}
	return models.LabRecord{
		Name:           b.Name,
		Value:          value,
		Unit:           b.Unit,
		ReferenceRange: fmt.Sprintf("%g-%g", b.RefLow, b.RefHigh),
		Flag:           flag,
	}
}

// DefaultCatalog covers the NHANES laboratory variables the clinical adapter
// understands.
func DefaultCatalog() Catalog {
	return Catalog{Biomarkers: map[string]Biomarker{
		"LBXGLU":   {Name: "glucose", Unit: "mg/dL", RefLow: 70, RefHigh: 100},
		"LBXGH":    {Name: "hba1c", Unit: "%", RefLow: 4.0, RefHigh: 5.6},
		"LBXTC":    {Name: "total_cholesterol", Unit: "mg/dL", RefLow: 125, RefHigh: 200},
		"LBDHDL":   {Name: "hdl", Unit: "mg/dL", RefLow: 40, RefHigh: 60},
		"LBDLDL":   {Name: "ldl", Unit: "mg/dL", RefLow: 0, RefHigh: 100},
		"LBXTR":    {Name: "triglycerides", Unit: "mg/dL", RefLow: 0, RefHigh: 150},
		"LBXCR":    {Name: "creatinine", Unit: "mg/dL", RefLow: 0.7, RefHigh: 1.3},
		"LBXSBU":   {Name: "bun", Unit: "mg/dL", RefLow: 7, RefHigh: 20},
		"LBXSUA":   {Name: "uric_acid", Unit: "mg/dL", RefLow: 3.5, RefHigh: 7.2},
		"LBXSTP":   {Name: "total_protein", Unit: "g/dL", RefLow: 6.0, RefHigh: 8.3},
		"LBXSAL":   {Name: "albumin", Unit: "g/dL", RefLow: 3.5, RefHigh: 5.0},
		"LBXSTB":   {Name: "total_bilirubin", Unit: "mg/dL", RefLow: 0.1, RefHigh: 1.2},
		"LBXSASSI": {Name: "ast", Unit: "U/L", RefLow: 10, RefHigh: 40},
		"LBXSATSI": {Name: "alt", Unit: "U/L", RefLow: 7, RefHigh: 56},
		"LBXSAPSI": {Name: "alp", Unit: "U/L", RefLow: 44, RefHigh: 147},
		"LBXWBCSI": {Name: "wbc", Unit: "10^3/uL", RefLow: 4.5, RefHigh: 11.0},
		"LBXRBCSI": {Name: "rbc", Unit: "10^6/uL", RefLow: 4.5, RefHigh: 5.5},
		"LBXHGB":   {Name: "hemoglobin", Unit: "g/dL", RefLow: 12.0, RefHigh: 17.5},
		"LBXHCT":   {Name: "hematocrit", Unit: "%", RefLow: 36, RefHigh: 50},
	}}
}
