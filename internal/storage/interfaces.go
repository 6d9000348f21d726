package storage

import (
	"context"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
)

// InventoryRepository stores the two append-only collection inventories.
// Items are never mutated or reordered after append.
type InventoryRepository interface {
	// Append adds one collected item to the inventory for its kind.
	Append(ctx context.Context, item model.CollectedItem) error

	// List returns all items of a kind in append order.
	List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error)

	// Clear removes every item of both kinds (owner reset).
	Clear(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}
