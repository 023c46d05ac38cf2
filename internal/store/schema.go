package store

// Schema creates the scenario library. Only fact sets are stored; journal
// entries are recomputed on every read.
const Schema = `
CREATE TABLE IF NOT EXISTS scenarios (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    facts      JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios (created_at DESC);

CREATE TABLE IF NOT EXISTS idempotency_keys (
    key             TEXT PRIMARY KEY,
    request_hash    TEXT NOT NULL,
    status          TEXT NOT NULL,
    scenario_id     BIGINT REFERENCES scenarios (id),
    response_status INT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
