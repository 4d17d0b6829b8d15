package database

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Versions must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS accountants (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS companies (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	tax_id        TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL UNIQUE,
	accountant_id BIGINT REFERENCES accountants(id) ON DELETE SET NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS documents (
	id              BIGSERIAL PRIMARY KEY,
	company_id      BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	document_type   TEXT NOT NULL,
	operation_type  TEXT NOT NULL,
	document_date   DATE NOT NULL,
	vendor_client   TEXT NOT NULL DEFAULT '',
	amount          NUMERIC(14, 2) NOT NULL DEFAULT 0,
	reference       TEXT NOT NULL DEFAULT '',
	file_name       TEXT NOT NULL,
	file_path       TEXT NOT NULL DEFAULT '',
	file_size       BIGINT NOT NULL DEFAULT 0,
	mime_type       TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'processed', 'rejected')),
	comments        TEXT NOT NULL DEFAULT '',
	processed_by    BIGINT,
	processing_date TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_documents_company_status ON documents (company_id, status);

CREATE TABLE IF NOT EXISTS notifications (
	id             BIGSERIAL PRIMARY KEY,
	recipient_type TEXT NOT NULL CHECK (recipient_type IN ('admin', 'accountant', 'company')),
	recipient_id   BIGINT NOT NULL,
	message        TEXT NOT NULL,
	is_read        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient
	ON notifications (recipient_type, recipient_id, created_at DESC);

CREATE INDEX IF NOT EXISTS idx_notifications_unread
	ON notifications (recipient_type, recipient_id) WHERE is_read = FALSE;
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE documents ADD COLUMN IF NOT EXISTS processed_by_type TEXT
	CHECK (processed_by_type IN ('admin', 'accountant'));
`,
	},
}
