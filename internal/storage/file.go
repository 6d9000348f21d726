package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/atomicfile"
)

// FileRepository implements InventoryRepository on two JSON files, one per
// kind. Every append rewrites the whole file through a temp-write plus
// atomic rename, so the canonical file is never observed half-written.
// Not designed for unbounded growth; inventories stay small in practice.
type FileRepository struct {
	mu        sync.Mutex
	cards     []model.CollectedItem
	creatures []model.CollectedItem

	cardsPath     string
	creaturesPath string
}

// NewFileRepository loads both inventories. Missing files yield empty
// inventories; corrupt files log, reset to empty, and startup continues.
func NewFileRepository(cardsPath, creaturesPath string) *FileRepository {
	r := &FileRepository{
		cardsPath:     cardsPath,
		creaturesPath: creaturesPath,
	}
	r.cards = loadItems(cardsPath)
	r.creatures = loadItems(creaturesPath)
	log.Printf("[FileRepository] Loaded %d cards and %d creatures", len(r.cards), len(r.creatures))
	return r
}

func loadItems(path string) []model.CollectedItem {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		log.Printf("[FileRepository] Error reading %s, starting empty: %v", path, err)
		return nil
	}
	var items []model.CollectedItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[FileRepository] Corrupt inventory %s, starting empty: %v", path, err)
		return nil
	}
	return items
}

// save writes one inventory file. Callers must hold r.mu.
func save(path string, items []model.CollectedItem) error {
	if items == nil {
		items = []model.CollectedItem{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize inventory: %w", err)
	}
	return atomicfile.WriteFile(path, data)
}

// Append adds the item and persists the full inventory for its kind.
func (r *FileRepository) Append(ctx context.Context, item model.CollectedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch item.Kind {
	case model.KindCreature:
		r.creatures = append(r.creatures, item)
		return save(r.creaturesPath, r.creatures)
	default:
		r.cards = append(r.cards, item)
		return save(r.cardsPath, r.cards)
	}
}

// List returns a copy of the inventory for kind, in append order.
func (r *FileRepository) List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.cards
	if kind == model.KindCreature {
		src = r.creatures
	}
	out := make([]model.CollectedItem, len(src))
	copy(out, src)
	return out, nil
}

// Clear empties both inventories and persists the empty state.
func (r *FileRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards = nil
	r.creatures = nil
	if err := save(r.cardsPath, r.cards); err != nil {
		return err
	}
	return save(r.creaturesPath, r.creatures)
}

// Close is a no-op for the file backend.
func (r *FileRepository) Close() error { return nil }

// Ensure FileRepository implements InventoryRepository
var _ InventoryRepository = (*FileRepository)(nil)
