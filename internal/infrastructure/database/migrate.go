package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS vocab_sets (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	language       TEXT NOT NULL DEFAULT 'en',
	target_mastery DOUBLE PRECISION NOT NULL DEFAULT 0.8,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS vocab_items (
	id                  BIGSERIAL PRIMARY KEY,
	set_id              BIGINT NOT NULL REFERENCES vocab_sets(id),
	word                TEXT NOT NULL,
	translation         TEXT NOT NULL DEFAULT '',
	example_sentence    TEXT NOT NULL DEFAULT '',
	example_translation TEXT NOT NULL DEFAULT '',
	audio_url           TEXT NOT NULL DEFAULT '',
	word_count          INTEGER NOT NULL DEFAULT 1,
	max_errors          INTEGER NOT NULL DEFAULT 3,
	position            INTEGER NOT NULL DEFAULT 0,
	created_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vocab_items_set ON vocab_items(set_id, position);

CREATE TABLE IF NOT EXISTS memory_records (
	id               BIGSERIAL PRIMARY KEY,
	learner_id       BIGINT NOT NULL,
	item_id          BIGINT NOT NULL REFERENCES vocab_items(id),
	memory_strength  DOUBLE PRECISION NOT NULL DEFAULT 0,
	repetition_count INTEGER NOT NULL DEFAULT 0,
	correct_count    INTEGER NOT NULL DEFAULT 0,
	incorrect_count  INTEGER NOT NULL DEFAULT 0,
	easiness_factor  DOUBLE PRECISION NOT NULL DEFAULT 2.5,
	interval_days    DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_review_at   TIMESTAMPTZ,
	next_review_at   TIMESTAMPTZ,
	version          BIGINT NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL,
	UNIQUE (learner_id, item_id)
);
CREATE INDEX IF NOT EXISTS idx_memory_records_due ON memory_records(learner_id, next_review_at);

CREATE TABLE IF NOT EXISTS practice_sessions (
	id           TEXT PRIMARY KEY,
	learner_id   BIGINT NOT NULL,
	set_id       BIGINT NOT NULL REFERENCES vocab_sets(id),
	mode         TEXT NOT NULL,
	items        JSONB NOT NULL DEFAULT '[]',
	answers      JSONB NOT NULL DEFAULT '[]',
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_practice_sessions_learner ON practice_sessions(learner_id, set_id);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS vocab_sets (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	language       TEXT NOT NULL DEFAULT 'en',
	target_mastery REAL NOT NULL DEFAULT 0.8,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS vocab_items (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	set_id              INTEGER NOT NULL REFERENCES vocab_sets(id),
	word                TEXT NOT NULL,
	translation         TEXT NOT NULL DEFAULT '',
	example_sentence    TEXT NOT NULL DEFAULT '',
	example_translation TEXT NOT NULL DEFAULT '',
	audio_url           TEXT NOT NULL DEFAULT '',
	word_count          INTEGER NOT NULL DEFAULT 1,
	max_errors          INTEGER NOT NULL DEFAULT 3,
	position            INTEGER NOT NULL DEFAULT 0,
	created_at          TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vocab_items_set ON vocab_items(set_id, position);

CREATE TABLE IF NOT EXISTS memory_records (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	learner_id       INTEGER NOT NULL,
	item_id          INTEGER NOT NULL REFERENCES vocab_items(id),
	memory_strength  REAL NOT NULL DEFAULT 0,
	repetition_count INTEGER NOT NULL DEFAULT 0,
	correct_count    INTEGER NOT NULL DEFAULT 0,
	incorrect_count  INTEGER NOT NULL DEFAULT 0,
	easiness_factor  REAL NOT NULL DEFAULT 2.5,
	interval_days    REAL NOT NULL DEFAULT 0,
	last_review_at   TIMESTAMP,
	next_review_at   TIMESTAMP,
	version          INTEGER NOT NULL DEFAULT 1,
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL,
	UNIQUE (learner_id, item_id)
);
CREATE INDEX IF NOT EXISTS idx_memory_records_due ON memory_records(learner_id, next_review_at);

CREATE TABLE IF NOT EXISTS practice_sessions (
	id           TEXT PRIMARY KEY,
	learner_id   INTEGER NOT NULL,
	set_id       INTEGER NOT NULL REFERENCES vocab_sets(id),
	mode         TEXT NOT NULL,
	items        TEXT NOT NULL DEFAULT '[]',
	answers      TEXT NOT NULL DEFAULT '[]',
	started_at   TIMESTAMP NOT NULL,
	completed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_practice_sessions_learner ON practice_sessions(learner_id, set_id);
`

// Migrate creates the schema for the connected driver if it does not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := schemaPostgres
	if db.DriverName() == "sqlite3" {
		schema = schemaSQLite
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
