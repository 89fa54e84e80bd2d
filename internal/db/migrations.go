package db

import (
	"fmt"

	"gorm.io/gorm"
)

// migrationStatements are written to run unchanged on sqlite and postgres.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS plate_collections (
		id VARCHAR(36) PRIMARY KEY,
		source TEXT NOT NULL DEFAULT '',
		loaded_at TIMESTAMP NOT NULL,
		saved_at TIMESTAMP NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_collections_saved_at ON plate_collections (saved_at);`,
	`CREATE TABLE IF NOT EXISTS plate_entries (
		id VARCHAR(36) PRIMARY KEY,
		collection_id VARCHAR(36) NOT NULL REFERENCES plate_collections (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		plate_key TEXT NOT NULL,
		plate TEXT NOT NULL,
		source_rows TEXT NOT NULL DEFAULT '[]'
	);`,
	`CREATE INDEX IF NOT EXISTS idx_plate_entries_collection_id ON plate_entries (collection_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plate_entries_collection_key ON plate_entries (collection_id, plate_key);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
