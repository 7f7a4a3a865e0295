package store

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	client_secret TEXT NOT NULL,
	webhook_url TEXT NOT NULL,
	verification_token TEXT NOT NULL DEFAULT '',
	external_id TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_companies_external ON companies(external_id);

CREATE TABLE IF NOT EXISTS access_tokens (
	company_id TEXT NOT NULL,
	workspace_id TEXT NOT NULL,
	access_token TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (company_id, workspace_id)
);
`
