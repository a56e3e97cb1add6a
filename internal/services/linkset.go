package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkStore is the storage surface a link table exposes to the
// reconciler. Every link repo in internal/repos satisfies it.
type LinkStore interface {
	ExistingIDs(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]uuid.UUID, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, relatedIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, relatedIDs []uuid.UUID) error
}

// LinkDiff records what a reconcile pass actually changed.
type LinkDiff struct {
	Added   []uuid.UUID
	Removed []uuid.UUID
}

func (d LinkDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// ReconcileLinks makes the stored link set for parentID equal the
// desired set: stale links are batch-deleted first, then the missing
// ones bulk-inserted. Links present in both sets are left untouched,
// so reconciling the same desired set twice is a no-op. Duplicate and
// nil IDs in desired are ignored.
func ReconcileLinks(ctx context.Context, tx *gorm.DB, store LinkStore, parentID uuid.UUID, desired []uuid.UUID) (LinkDiff, error) {
	var diff LinkDiff
	if parentID == uuid.Nil {
		return diff, fmt.Errorf("reconcile links: parent id required")
	}

	want := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		if id == uuid.Nil {
			continue
		}
		want[id] = struct{}{}
	}

	existing, err := store.ExistingIDs(ctx, tx, parentID)
	if err != nil {
		return diff, fmt.Errorf("reconcile links: load existing: %w", err)
	}
	have := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}

	for id := range want {
		if _, ok := have[id]; !ok {
			diff.Added = append(diff.Added, id)
		}
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}

	if len(diff.Removed) > 0 {
		if err := store.DeleteLinks(ctx, tx, parentID, diff.Removed); err != nil {
			return LinkDiff{}, fmt.Errorf("reconcile links: delete: %w", err)
		}
	}
	if len(diff.Added) > 0 {
		if err := store.InsertLinks(ctx, tx, parentID, diff.Added); err != nil {
			return LinkDiff{}, fmt.Errorf("reconcile links: insert: %w", err)
		}
	}
	return diff, nil
}
