package importer

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/chms_sampledata/models"
)

// DefinedValueRegistry resolves classification values by exact name,
// creating them when absent. Results are memoized per run so repeated
// lookups of the same value never hit the store twice, and repeated misses
// never create duplicates.
type DefinedValueRegistry struct {
	store Store
	types map[string]int                  // defined type name -> id
	cache map[string]*models.DefinedValue // "typeId:value" -> value
}

func NewDefinedValueRegistry(store Store) *DefinedValueRegistry {
	return &DefinedValueRegistry{
		store: store,
		types: make(map[string]int),
		cache: make(map[string]*models.DefinedValue),
	}
}

// TypeID resolves a defined type by name, creating it if absent.
func (r *DefinedValueRegistry) TypeID(ctx context.Context, typeName string) (int, error) {
	if id, ok := r.types[typeName]; ok {
		return id, nil
	}
	dt, err := r.store.DefinedTypeByName(ctx, typeName)
	if err != nil {
		return 0, fmt.Errorf("lookup defined type %q: %w", typeName, err)
	}
	if dt == nil {
		dt = &models.DefinedType{Name: typeName}
		if err := r.store.Add(ctx, dt); err != nil {
			return 0, err
		}
		if err := r.store.SaveChanges(ctx); err != nil {
			return 0, fmt.Errorf("create defined type %q: %w", typeName, err)
		}
	}
	r.types[typeName] = dt.ID
	return dt.ID, nil
}

// GetOrAdd finds the classification value by case-sensitive exact match,
// creating and caching it when absent.
func (r *DefinedValueRegistry) GetOrAdd(ctx context.Context, typeName string, value string) (*models.DefinedValue, error) {
	typeId, err := r.TypeID(ctx, typeName)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d:%s", typeId, value)
	if dv, ok := r.cache[key]; ok {
		return dv, nil
	}

	dv, err := r.store.DefinedValueByValue(ctx, typeId, value)
	if err != nil {
		return nil, fmt.Errorf("lookup defined value %q: %w", value, err)
	}
	if dv == nil {
		dv = &models.DefinedValue{DefinedTypeId: typeId, Value: value}
		if err := r.store.Add(ctx, dv); err != nil {
			return nil, err
		}
		if err := r.store.SaveChanges(ctx); err != nil {
			return nil, fmt.Errorf("create defined value %q: %w", value, err)
		}
	}
	r.cache[key] = dv
	return dv, nil
}
