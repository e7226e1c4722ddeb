package datasets

import (
	"fmt"

	"github.com/Fram-Jam/healthbridge/pkg/common/logger"
	"github.com/Fram-Jam/healthbridge/pkg/common/models"
)

// Registry maps dataset ids to adapter instances. Instances are constructed
// lazily and cached for the registry's lifetime; changing the data directory
// invalidates the cache. Construct one registry at process start and inject
// it where needed.
type Registry struct {
	dataDir   string
	factories map[string]Factory
	instances map[string]Adapter
	order     []string
}

func NewRegistry(dataDir string) *Registry {
	return &Registry{
		dataDir:   dataDir,
		factories: make(map[string]Factory),
		instances: make(map[string]Adapter),
	}
}

// SetDataDir re-roots every adapter and drops all cached instances.
func (r *Registry) SetDataDir(dataDir string) {
	r.dataDir = dataDir
	r.instances = make(map[string]Adapter)
}

func (r *Registry) DataDir() string {
	return r.dataDir
}

// Register keys the factory by the id reported by a throwaway instance's
// metadata. A duplicate id is a programmer error and is rejected so that two
// adapters cannot silently shadow one another.
func (r *Registry) Register(factory Factory) error {
	id := factory(r.dataDir).Metadata().ID
	if id == "" {
		return fmt.Errorf("adapter registered with empty dataset id")
	}
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("dataset id %q already registered", id)
	}
	r.factories[id] = factory
	r.order = append(r.order, id)
	return nil
}

// MustRegister panics on registration failure. Registration errors are
// contract violations, not runtime conditions.
func (r *Registry) MustRegister(factory Factory) {
	if err := r.Register(factory); err != nil {
		panic(err)
	}
}

// Get returns the cached adapter for the id, constructing it on first
// access. Unknown ids return nil.
func (r *Registry) Get(datasetID string) Adapter {
	factory, ok := r.factories[datasetID]
	if !ok {
		return nil
	}
	instance, ok := r.instances[datasetID]
	if !ok {
		instance = factory(r.dataDir)
		r.instances[datasetID] = instance
	}
	return instance
}

// ListAll returns metadata for every registered dataset in registration
// order.
func (r *Registry) ListAll() []models.DatasetMetadata {
	result := make([]models.DatasetMetadata, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.Get(id).Metadata())
	}
	return result
}

func (r *Registry) ListByCategory(category models.DataCategory) []models.DatasetMetadata {
	var result []models.DatasetMetadata
	for _, meta := range r.ListAll() {
		if meta.Category == category {
			result = append(result, meta)
		}
	}
	return result
}

// ListAvailable filters to datasets whose files are present on disk. Each
// entry costs a filesystem check; callers should not invoke this per record.
func (r *Registry) ListAvailable() []models.DatasetMetadata {
	var result []models.DatasetMetadata
	for _, id := range r.order {
		adapter := r.Get(id)
		if adapter.IsAvailable() {
			result = append(result, adapter.Metadata())
		}
	}
	return result
}

func (r *Registry) AvailableIDs() []string {
	metas := r.ListAvailable()
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		ids = append(ids, m.ID)
	}
	return ids
}

// RegisterDefaults registers every built-in adapter family. Safe to call
// repeatedly: ids already present are skipped.
func (r *Registry) RegisterDefaults(factories ...Factory) {
	for _, factory := range factories {
		id := factory(r.dataDir).Metadata().ID
		if _, exists := r.factories[id]; exists {
			continue
		}
		if err := r.Register(factory); err != nil {
			logger.Log.WithError(err).WithField("dataset_id", id).Warn("skipping adapter registration")
		}
	}
}
