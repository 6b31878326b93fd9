package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bills (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    due_day              INTEGER NOT NULL,
    due_month            INTEGER NOT NULL,
    cycle_type           TEXT NOT NULL DEFAULT 'Every Month',
    amount               TEXT NOT NULL,
    paid                 INTEGER NOT NULL DEFAULT 0,
    updated_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_position ON bills(position);
`
