package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema. The database only ever exists in memory,
// so there are no migrations: every process starts from this schema.
//
// Tests load it through GetSchemaSQL() rather than declaring tables of their own.
const SchemaSQL = `
-- Monotonic ID counters (IDs are never reused after deletes)
CREATE TABLE IF NOT EXISTS sequences (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);

-- Jios (group orders)
CREATE TABLE IF NOT EXISTS jios (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	creator_id INTEGER NOT NULL,
	creator_name TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jios_creator_id ON jios(creator_id);

-- Items in display order (rowid order)
CREATE TABLE IF NOT EXISTS jio_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	jio_id INTEGER NOT NULL REFERENCES jios(id) ON DELETE CASCADE,
	contributor_name TEXT NOT NULL,
	item_text TEXT NOT NULL,
	added_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jio_items_jio_id ON jio_items(jio_id);

-- Participants in first-seen order
CREATE TABLE IF NOT EXISTS jio_participants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	jio_id INTEGER NOT NULL REFERENCES jios(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	UNIQUE (jio_id, name)
);

-- Messages showing a jio's summary card
CREATE TABLE IF NOT EXISTS jio_surfaces (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	jio_id INTEGER NOT NULL REFERENCES jios(id) ON DELETE CASCADE,
	kind TEXT NOT NULL CHECK (kind IN ('inline', 'chat')),
	inline_message_id TEXT NOT NULL DEFAULT '',
	chat_id INTEGER NOT NULL DEFAULT 0,
	message_id INTEGER NOT NULL DEFAULT 0,
	UNIQUE (jio_id, kind, inline_message_id, chat_id, message_id)
);

-- Audit trail of jio mutations. Rows outlive the jios they describe.
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	actor_id INTEGER NOT NULL DEFAULT 0,
	actor_name TEXT NOT NULL DEFAULT '',
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK (action IN ('create', 'update', 'delete')),
	field_name TEXT NOT NULL DEFAULT '',
	old_value TEXT NOT NULL DEFAULT '',
	new_value TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
`

// InitSchema applies SchemaSQL to the database.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
