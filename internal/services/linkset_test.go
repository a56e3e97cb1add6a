package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeLinkStore struct {
	links   map[uuid.UUID]map[uuid.UUID]bool
	inserts int
	deletes int
	ops     []string
}

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{links: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (f *fakeLinkStore) set(parentID uuid.UUID, relatedIDs ...uuid.UUID) {
	m := map[uuid.UUID]bool{}
	for _, id := range relatedIDs {
		m[id] = true
	}
	f.links[parentID] = m
}

func (f *fakeLinkStore) ExistingIDs(_ context.Context, _ *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id := range f.links[parentID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeLinkStore) InsertLinks(_ context.Context, _ *gorm.DB, parentID uuid.UUID, relatedIDs []uuid.UUID) error {
	if f.links[parentID] == nil {
		f.links[parentID] = map[uuid.UUID]bool{}
	}
	for _, id := range relatedIDs {
		f.links[parentID][id] = true
		f.inserts++
	}
	f.ops = append(f.ops, "insert")
	return nil
}

func (f *fakeLinkStore) DeleteLinks(_ context.Context, _ *gorm.DB, parentID uuid.UUID, relatedIDs []uuid.UUID) error {
	for _, id := range relatedIDs {
		delete(f.links[parentID], id)
		f.deletes++
	}
	f.ops = append(f.ops, "delete")
	return nil
}

func TestReconcileLinks_AddsMissingAndRemovesStale(t *testing.T) {
	ctx := context.Background()
	parent := uuid.New()
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	store := newFakeLinkStore()
	store.set(parent, u1, u2)

	diff, err := ReconcileLinks(ctx, nil, store, parent, []uuid.UUID{u2, u3})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(diff.Added) != 1 || diff.Added[0] != u3 {
		t.Fatalf("expected only %s added, got %v", u3, diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0] != u1 {
		t.Fatalf("expected only %s removed, got %v", u1, diff.Removed)
	}
	if !store.links[parent][u2] {
		t.Fatalf("expected %s untouched", u2)
	}
	if store.inserts != 1 || store.deletes != 1 {
		t.Fatalf("expected 1 insert and 1 delete, got %d/%d", store.inserts, store.deletes)
	}
	if len(store.ops) != 2 || store.ops[0] != "delete" || store.ops[1] != "insert" {
		t.Fatalf("stale links must be deleted before inserting, got %v", store.ops)
	}
}

func TestReconcileLinks_SameSetTwiceIsNoOp(t *testing.T) {
	ctx := context.Background()
	parent := uuid.New()
	desired := []uuid.UUID{uuid.New(), uuid.New()}

	store := newFakeLinkStore()
	first, err := ReconcileLinks(ctx, nil, store, parent, desired)
	if err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	if len(first.Added) != 2 {
		t.Fatalf("expected 2 added, got %v", first.Added)
	}

	second, err := ReconcileLinks(ctx, nil, store, parent, desired)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if !second.Empty() {
		t.Fatalf("expected empty diff, got %+v", second)
	}
	if store.inserts != 2 || store.deletes != 0 {
		t.Fatalf("second pass must not touch storage, got %d/%d", store.inserts, store.deletes)
	}
}

func TestReconcileLinks_DeduplicatesAndSkipsNilIDs(t *testing.T) {
	ctx := context.Background()
	parent := uuid.New()
	u1 := uuid.New()

	store := newFakeLinkStore()
	diff, err := ReconcileLinks(ctx, nil, store, parent, []uuid.UUID{u1, u1, uuid.Nil})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(diff.Added) != 1 {
		t.Fatalf("expected 1 added, got %v", diff.Added)
	}
	if len(store.links[parent]) != 1 {
		t.Fatalf("expected 1 stored link, got %d", len(store.links[parent]))
	}
}

func TestReconcileLinks_EmptyDesiredClearsAll(t *testing.T) {
	ctx := context.Background()
	parent := uuid.New()
	u1, u2 := uuid.New(), uuid.New()

	store := newFakeLinkStore()
	store.set(parent, u1, u2)

	diff, err := ReconcileLinks(ctx, nil, store, parent, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(diff.Removed) != 2 {
		t.Fatalf("expected 2 removed, got %v", diff.Removed)
	}
	if len(store.links[parent]) != 0 {
		t.Fatalf("expected no links left, got %d", len(store.links[parent]))
	}
}

func TestReconcileLinks_RejectsNilParent(t *testing.T) {
	if _, err := ReconcileLinks(context.Background(), nil, newFakeLinkStore(), uuid.Nil, nil); err == nil {
		t.Fatalf("expected error for nil parent")
	}
}
