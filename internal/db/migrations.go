package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "replace_trigger_history_chains_with_counter_rows",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_audit_log_table",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 rebuilds volume_triggers as one mutable row per natural key.
// Earlier installs kept soft-delete history chains (is_active=0 rows plus
// superseded_by pointers), which grew without bound and forced
// latest-of-N queries; this collapses each chain into its newest row with
// detection_count set to the chain length.
func migrationV1(db *sql.DB) error {
	// Legacy installs only: the superseded_by column marks the old schema.
	var hasLegacy int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('volume_triggers') WHERE name = 'superseded_by'`).Scan(&hasLegacy)
	if err != nil {
		return err
	}
	if hasLegacy == 0 {
		return nil
	}

	_, err = db.Exec(`
		CREATE TABLE volume_triggers_new (
			id TEXT PRIMARY KEY,
			creator_id TEXT NOT NULL,
			content_type TEXT NOT NULL,
			trigger_type TEXT NOT NULL CHECK(trigger_type IN ('HIGH_PERFORMER', 'LOW_PERFORMER', 'TREND_RISING', 'TREND_FALLING')),
			adjustment_multiplier REAL NOT NULL,
			confidence TEXT NOT NULL CHECK(confidence IN ('low', 'moderate', 'high')),
			reason TEXT,
			expires_at TEXT,
			detected_at DATETIME NOT NULL,
			first_detected_at DATETIME NOT NULL,
			detection_count INTEGER NOT NULL DEFAULT 1,
			is_active INTEGER NOT NULL DEFAULT 1,
			metrics_json TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (creator_id) REFERENCES creators(id),
			UNIQUE(creator_id, content_type, trigger_type)
		);

		INSERT INTO volume_triggers_new (
			id, creator_id, content_type, trigger_type, adjustment_multiplier,
			confidence, reason, expires_at, detected_at, first_detected_at,
			detection_count, is_active, metrics_json
		)
		SELECT t.id, t.creator_id, t.content_type, t.trigger_type, t.adjustment_multiplier,
			t.confidence, t.reason, t.expires_at, t.detected_at,
			(SELECT MIN(detected_at) FROM volume_triggers o
				WHERE o.creator_id = t.creator_id
				AND o.content_type = t.content_type
				AND o.trigger_type = t.trigger_type),
			(SELECT COUNT(*) FROM volume_triggers o
				WHERE o.creator_id = t.creator_id
				AND o.content_type = t.content_type
				AND o.trigger_type = t.trigger_type),
			t.is_active, t.metrics_json
		FROM volume_triggers t
		WHERE t.superseded_by IS NULL;

		DROP TABLE volume_triggers;
		ALTER TABLE volume_triggers_new RENAME TO volume_triggers;
		CREATE INDEX IF NOT EXISTS idx_volume_triggers_creator ON volume_triggers(creator_id);
		CREATE INDEX IF NOT EXISTS idx_volume_triggers_active ON volume_triggers(creator_id, is_active);
	`)
	return err
}

// migrationV2 adds the audit_log table.
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			actor_id TEXT,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
	`)
	return err
}
