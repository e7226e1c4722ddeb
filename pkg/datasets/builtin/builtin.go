// Package builtin wires the built-in adapter families into a registry. It
// exists apart from package datasets so adapters can depend on the contract
// without a cycle.
package builtin

import (
	"github.com/Fram-Jam/healthbridge/pkg/datasets"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/cgm"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/clinical"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/genetics"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/sleep"
	"github.com/Fram-Jam/healthbridge/pkg/datasets/wearables"
	"github.com/Fram-Jam/healthbridge/pkg/labs"
)

// Options configure the built-in adapters. The zero value keeps every
// default.
type Options struct {
	// Catalog overrides the clinical adapter's biomarker catalog.
	Catalog *labs.Catalog
	// SubjectCap overrides the listing cap of capped adapters; 0 keeps the
	// adapter default.
	SubjectCap int
}

// Register adds every built-in adapter family to the registry. Idempotent:
// ids already registered are skipped, so repeated calls are no-ops.
func Register(r *datasets.Registry) {
	RegisterWithOptions(r, Options{})
}

// RegisterWithOptions is Register with adapter configuration applied.
func RegisterWithOptions(r *datasets.Registry, opts Options) {
	catalog := labs.DefaultCatalog()
	if opts.Catalog != nil {
		catalog = *opts.Catalog
	}
	r.RegisterDefaults(
		wearables.NewFitbit,
		wearables.NewPMData,
		func(dataDir string) datasets.Adapter {
			return clinical.NewNHANESWithCatalog(dataDir, catalog, opts.SubjectCap)
		},
		genetics.NewThousandGenomes,
		sleep.NewMESA,
		cgm.NewOhioT1DM,
	)
}

// NewRegistry builds a registry rooted at dataDir with all built-ins
// registered.
func NewRegistry(dataDir string) *datasets.Registry {
	r := datasets.NewRegistry(dataDir)
	Register(r)
	return r
}

// NewRegistryWithOptions is NewRegistry with adapter configuration applied.
func NewRegistryWithOptions(dataDir string, opts Options) *datasets.Registry {
	r := datasets.NewRegistry(dataDir)
	RegisterWithOptions(r, opts)
	return r
}
