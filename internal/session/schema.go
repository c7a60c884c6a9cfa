package session

// Bump when the sessions table shape changes; Open recreates the schema
// only when the stored version differs.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id               TEXT PRIMARY KEY,
    source_path      TEXT NOT NULL,
    title            TEXT,
    status           TEXT NOT NULL,
    progress_stage   TEXT,
    progress_percent REAL NOT NULL DEFAULT 0,
    progress_message TEXT,
    error_message    TEXT,
    export_path      TEXT,
    segment_count    INTEGER NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`
