package postgres

// Schema is the full relational schema, executable idempotently at
// startup. The composite foreign key on ledger_lines makes a line
// referencing another tenant's account fail exactly like a dangling id.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id          UUID PRIMARY KEY,
    owner_id    TEXT NOT NULL,
    code        TEXT NOT NULL,
    name        TEXT NOT NULL,
    type        TEXT NOT NULL CHECK (type IN ('Asset','Liability','Equity','Revenue','Expense')),
    description TEXT NOT NULL DEFAULT '',
    UNIQUE (owner_id, code),
    UNIQUE (id, owner_id)
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id          UUID PRIMARY KEY,
    owner_id    TEXT NOT NULL,
    date        DATE NOT NULL,
    description TEXT NOT NULL,
    source_type TEXT NOT NULL DEFAULT 'manual',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_lines (
    id               UUID PRIMARY KEY,
    journal_entry_id UUID NOT NULL REFERENCES journal_entries (id) ON DELETE CASCADE,
    owner_id         TEXT NOT NULL,
    account_id       UUID NOT NULL,
    debit            NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (debit >= 0),
    credit           NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (credit >= 0),
    FOREIGN KEY (account_id, owner_id) REFERENCES accounts (id, owner_id),
    CHECK ((debit > 0) <> (credit > 0))
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_owner ON journal_entries (owner_id, date DESC);
CREATE INDEX IF NOT EXISTS idx_ledger_lines_owner_account ON ledger_lines (owner_id, account_id);
`
