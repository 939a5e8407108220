package persist

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS companies (
	id                        TEXT PRIMARY KEY,
	name                      TEXT NOT NULL,
	communication_periodicity INTEGER NOT NULL CHECK(communication_periodicity > 0),
	email                     TEXT NOT NULL DEFAULT '',
	phone                     TEXT NOT NULL DEFAULT '',
	position                  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS communication_methods (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	sequence    INTEGER NOT NULL DEFAULT 0,
	mandatory   INTEGER NOT NULL DEFAULT 0 CHECK(mandatory IN (0, 1)),
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS communications (
	id            TEXT PRIMARY KEY,
	company_id    TEXT NOT NULL,
	date          TEXT NOT NULL,
	type          TEXT NOT NULL,
	notes         TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT '',
	response_date TEXT,
	position      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	id                           INTEGER PRIMARY KEY CHECK(id = 1),
	notifications_enabled        INTEGER NOT NULL DEFAULT 1,
	email_reminders              INTEGER NOT NULL DEFAULT 0,
	default_communication_period INTEGER NOT NULL DEFAULT 14,
	working_days                 TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_communications_company_id ON communications(company_id);
CREATE INDEX IF NOT EXISTS idx_communications_date ON communications(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
