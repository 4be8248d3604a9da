package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// local_storage mirrors browser local storage: one opaque value per key,
	// always replaced as a whole.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS moodflow_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS local_storage (
    key VARCHAR(256) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)
