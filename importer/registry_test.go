package importer

import (
	"context"
	"testing"

	"github.com/mmdatafocus/chms_sampledata/models"
)

func TestRegistryGetOrAddCreatesOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	registry := NewDefinedValueRegistry(store)

	first, err := registry.GetOrAdd(ctx, models.DefinedTypeRecordStatus, "Active")
	if err != nil {
		t.Fatalf("GetOrAdd: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected a storage id after create, got 0")
	}

	second, err := registry.GetOrAdd(ctx, models.DefinedTypeRecordStatus, "Active")
	if err != nil {
		t.Fatalf("GetOrAdd (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeated lookup created a new row: got id %d, want %d", second.ID, first.ID)
	}
	if len(store.definedValues) != 1 {
		t.Fatalf("expected 1 defined value row, got %d", len(store.definedValues))
	}
}

func TestRegistryMatchIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	registry := NewDefinedValueRegistry(newMemStore())

	lower, err := registry.GetOrAdd(ctx, models.DefinedTypeCurrencyType, "cash")
	if err != nil {
		t.Fatalf("GetOrAdd: %v", err)
	}
	upper, err := registry.GetOrAdd(ctx, models.DefinedTypeCurrencyType, "Cash")
	if err != nil {
		t.Fatalf("GetOrAdd: %v", err)
	}
	if lower.ID == upper.ID {
		t.Fatalf("case-different values resolved to the same row id %d", lower.ID)
	}
}

func TestRegistryReusesExistingStoreRows(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	dt := &models.DefinedType{Name: models.DefinedTypeCurrencyType}
	if err := store.insert(dt); err != nil {
		t.Fatalf("seed defined type: %v", err)
	}
	dv := &models.DefinedValue{DefinedTypeId: dt.ID, Value: "Check"}
	if err := store.insert(dv); err != nil {
		t.Fatalf("seed defined value: %v", err)
	}

	registry := NewDefinedValueRegistry(store)
	got, err := registry.GetOrAdd(ctx, models.DefinedTypeCurrencyType, "Check")
	if err != nil {
		t.Fatalf("GetOrAdd: %v", err)
	}
	if got.ID != dv.ID {
		t.Fatalf("expected existing row %d, got %d", dv.ID, got.ID)
	}
	if len(store.definedValues) != 1 {
		t.Fatalf("expected no new rows, got %d", len(store.definedValues))
	}
}
