package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLRepository implements InventoryRepository on MySQL, for deployments
// that already run one next to the bot.
type MySQLRepository struct {
	db *sql.DB
}

// NewMySQLRepository connects and prepares the schema.
func NewMySQLRepository(dsn string) (*MySQLRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS collected_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		kind VARCHAR(16) NOT NULL,
		item_json TEXT NOT NULL,
		collected_at DATETIME NOT NULL,
		INDEX idx_items_kind (kind)
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLRepository] Initialized")
	return &MySQLRepository{db: db}, nil
}

// Append inserts one collected item.
func (r *MySQLRepository) Append(ctx context.Context, item model.CollectedItem) error {
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
func (r *MySQLRepository) List(ctx context.Context, kind model.Kind) ([]model.CollectedItem, error) {
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
			log.Printf("[MySQLRepository] Skipping unreadable row: %v", err)
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear deletes every item of both kinds.
func (r *MySQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collected_items`); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *MySQLRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLRepository implements InventoryRepository
var _ InventoryRepository = (*MySQLRepository)(nil)
