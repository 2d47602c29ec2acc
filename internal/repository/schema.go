package repository

// schema is portable between Postgres and SQLite. Money columns hold cents so
// balance arithmetic in SQL is exact on both.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name     TEXT NOT NULL,
	phone         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id),
	account_number TEXT NOT NULL UNIQUE,
	account_type   TEXT NOT NULL CHECK (account_type IN ('savings', 'checking', 'business')),
	balance_cents  BIGINT NOT NULL DEFAULT 0 CHECK (balance_cents >= 0),
	status         TEXT NOT NULL CHECK (status IN ('active', 'suspended', 'closed')),
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id);

CREATE TABLE IF NOT EXISTS transactions (
	id                  TEXT PRIMARY KEY,
	account_id          TEXT NOT NULL REFERENCES accounts(id),
	transaction_type    TEXT NOT NULL,
	amount_cents        BIGINT NOT NULL CHECK (amount_cents > 0),
	balance_after_cents BIGINT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	counterparty        TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL,
	created_at          TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account_created ON transactions(account_id, created_at);

CREATE TABLE IF NOT EXISTS loans (
	id                    TEXT PRIMARY KEY,
	user_id               TEXT NOT NULL REFERENCES users(id),
	account_id            TEXT NOT NULL REFERENCES accounts(id),
	principal_cents       BIGINT NOT NULL CHECK (principal_cents > 0),
	interest_rate         TEXT NOT NULL,
	term_months           INTEGER NOT NULL CHECK (term_months > 0),
	monthly_payment_cents BIGINT NOT NULL,
	outstanding_cents     BIGINT NOT NULL CHECK (outstanding_cents >= 0),
	status                TEXT NOT NULL CHECK (status IN ('active', 'paid', 'defaulted')),
	approved_at           TIMESTAMP NOT NULL,
	created_at            TIMESTAMP NOT NULL,
	updated_at            TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loans_user_id ON loans(user_id);

CREATE TABLE IF NOT EXISTS bill_payments (
	id               TEXT PRIMARY KEY,
	account_id       TEXT NOT NULL REFERENCES accounts(id),
	biller_name      TEXT NOT NULL,
	amount_cents     BIGINT NOT NULL CHECK (amount_cents > 0),
	reference_number TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	payment_date     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_payments_account_id ON bill_payments(account_id);
`
