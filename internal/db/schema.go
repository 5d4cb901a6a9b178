package db

// SchemaSQL is the complete schema for fresh sendgate installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(), so repository code referencing a column that does
// not exist here fails immediately with "no such column" at test time.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Creators (registry of pages triggers and schedules belong to)
CREATE TABLE IF NOT EXISTS creators (
	id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	page_type TEXT NOT NULL CHECK(page_type IN ('free', 'paid')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Volume triggers: one mutable row per natural key. Re-detections merge in
-- place and bump detection_count; rows are never deleted here (expiry
-- sweeping is an external concern). The uniqueness constraint is full, not
-- partial, so upsert-on-conflict still works after a row is deactivated.
CREATE TABLE IF NOT EXISTS volume_triggers (
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

CREATE INDEX IF NOT EXISTS idx_volume_triggers_creator ON volume_triggers(creator_id);
CREATE INDEX IF NOT EXISTS idx_volume_triggers_active ON volume_triggers(creator_id, is_active);

-- Audit trail for validation and persistence runs
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
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Fresh installs get the modern schema directly with all migrations
	// marked applied; existing installs run pending migrations.
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, migration := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
				return err
			}
		}
		return nil
	}

	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
