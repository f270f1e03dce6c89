package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    operation TEXT NOT NULL,
    backup_root TEXT NOT NULL,
    categories TEXT NOT NULL,
    repo_count INTEGER NOT NULL DEFAULT 0,
    cert_count INTEGER NOT NULL DEFAULT 0,
    package_count INTEGER NOT NULL DEFAULT 0,
    succeeded BOOLEAN NOT NULL,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_operation ON runs(operation);
`
