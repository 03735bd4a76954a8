package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		photo TEXT,
		password_hash TEXT NOT NULL DEFAULT '',
		is_email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_signup_completed BOOLEAN NOT NULL DEFAULT FALSE,
		receive_newsletter BOOLEAN NOT NULL DEFAULT FALSE,
		new_notifications INTEGER NOT NULL DEFAULT 0,
		verify_email_token TEXT,
		verify_email_code TEXT,
		verify_email_expire TIMESTAMPTZ,
		reset_password_token TEXT,
		reset_password_code TEXT,
		reset_password_expire TIMESTAMPTZ,
		is_reset_password_code_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		reminder_date TIMESTAMPTZ NOT NULL,
		days_btwn_reminder_and_event INTEGER NOT NULL DEFAULT 0,
		todo_count INTEGER NOT NULL DEFAULT 0,
		todos JSONB NOT NULL DEFAULT '[]',
		bg_cover TEXT,
		invite_link_id TEXT NOT NULL UNIQUE,
		is_invite_link_active BOOLEAN NOT NULL DEFAULT FALSE,
		invited_emails JSONB NOT NULL DEFAULT '[]',
		invitee_roles JSONB NOT NULL DEFAULT '[]',
		invitee_ids TEXT[] NOT NULL DEFAULT '{}',
		owner_id TEXT NOT NULL REFERENCES users(id),
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_owner ON events (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_invitees ON events USING GIN (invitee_ids)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id),
		initiator_id TEXT NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id TEXT NOT NULL,
		is_action_required BOOLEAN NOT NULL DEFAULT FALSE,
		action_type TEXT,
		action_taken BOOLEAN NOT NULL DEFAULT FALSE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_owner ON notifications (owner_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		alternators TEXT[] NOT NULL DEFAULT '{}',
		type TEXT NOT NULL,
		link TEXT,
		combined_link JSONB,
		owner_id TEXT,
		clicks INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_target ON links (link)`,
	`CREATE TABLE IF NOT EXISTS stats (
		id TEXT PRIMARY KEY,
		ip TEXT NOT NULL UNIQUE,
		visits JSONB NOT NULL DEFAULT '[]',
		clicks INTEGER NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
// Statements are idempotent so startup can always run this.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
