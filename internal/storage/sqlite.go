package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteRepository implements InventoryRepository using SQLite. Items are
// stored as JSON rows so the schema never chases the spawn templates.
type SQLiteRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteRepository opens (or creates) the database at dbPath.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteRepository] Initialized with database: %s", dbPath)
	return &SQLiteRepository{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS collected_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		item_json TEXT NOT NULL,
		collected_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_kind ON collected_items(kind);
	`
	_, err := db.Exec(query)
	return err
}

// Append inserts one collected item.
func (r *SQLiteRepository) Append(ctx context.Context, item model.CollectedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to serialize item: %w", err)
	}

	query := `INSERT INTO collected_items (kind, item_json, collected_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, string(item.Kind), string(data), item.CollectedAt); err != nil {
		return fmt.Errorf("failed to append item: %w", err)
	}
	return nil
}

// List returns all items of a kind in insertion order.
func (r *SQLiteRepository) List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT item_json FROM collected_items WHERE kind = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.CollectedItem
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var item model.CollectedItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			log.Printf("[SQLiteRepository] Skipping unreadable row: %v", err)
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear deletes every item of both kinds.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM collected_items`); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteRepository implements InventoryRepository
var _ InventoryRepository = (*SQLiteRepository)(nil)
