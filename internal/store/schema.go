package store

// SchemaVersion is bumped whenever Schema changes shape.
const SchemaVersion = 1

// Schema creates the profile and audit tables. Profiles are superseded in
// place: an update overwrites the stored attributes and bumps updated_at;
// there is no version history. The audit log is append-only.
const Schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS profiles (
	id          TEXT PRIMARY KEY,
	customer    TEXT NOT NULL,
	attributes  TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_customer ON profiles(customer);

CREATE TABLE IF NOT EXISTS audit_log (
	id          TEXT PRIMARY KEY,
	profile_id  TEXT,
	action      TEXT NOT NULL,
	detail      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_profile ON audit_log(profile_id, created_at);
`

const (
	insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?);`
	getSchemaVersion    = `SELECT version FROM schema_version LIMIT 1;`
)
