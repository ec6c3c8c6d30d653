package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    key                  TEXT PRIMARY KEY,
    body                 TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    target_amount        REAL NOT NULL,
    saved_amount         REAL NOT NULL,
    position             INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_position ON goals(position);
`
