// Package persist mirrors the record store to durable local storage. The
// snapshot lives in a SQLite database rewritten atomically on every
// mutation, and can also round-trip through a JSON file for export and
// import.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ptarn/cadence/internal/model"
)

// SQLiteStore persists state snapshots to a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Save rewrites the persisted snapshot to match the given state. The whole
// rewrite happens in one transaction so a reader never observes a partial
// snapshot. A position column preserves insertion order across reloads.
func (s *SQLiteStore) Save(ctx context.Context, state model.State) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"companies", "communication_methods", "communications"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, c := range state.Companies {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO companies (id, name, communication_periodicity, email, phone, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.CommunicationPeriodicity, c.Email, c.Phone, i,
		)
		if err != nil {
			return fmt.Errorf("writing company %s: %w", c.ID, err)
		}
	}

	for i, m := range state.CommunicationMethods {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO communication_methods (id, name, description, sequence, mandatory, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Description, m.Sequence, boolToInt(m.Mandatory), i,
		)
		if err != nil {
			return fmt.Errorf("writing communication method %s: %w", m.ID, err)
		}
	}

	for i, c := range state.Communications {
		var responseDate *string
		if c.ResponseDate != nil {
			rd := c.ResponseDate.String()
			responseDate = &rd
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO communications (id, company_id, date, type, notes, status, response_date, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.CompanyID, c.Date.String(), c.Type, c.Notes, c.Status, responseDate, i,
		)
		if err != nil {
			return fmt.Errorf("writing communication %s: %w", c.ID, err)
		}
	}

	workingDays, err := json.Marshal(state.Settings.WorkingDays)
	if err != nil {
		return fmt.Errorf("marshaling working days: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings
			(id, notifications_enabled, email_reminders, default_communication_period, working_days)
		VALUES (1, ?, ?, ?, ?)`,
		boolToInt(state.Settings.NotificationsEnabled),
		boolToInt(state.Settings.EmailReminders),
		state.Settings.DefaultCommunicationPeriod,
		string(workingDays),
	)
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return tx.Commit()
}

// Load reads the persisted snapshot. ok is false when the database holds no
// snapshot yet (fresh file), in which case the caller seeds the store.
func (s *SQLiteStore) Load(ctx context.Context) (state model.State, ok bool, err error) {
	var settingsCount int
	if err := s.db.GetContext(ctx, &settingsCount, "SELECT COUNT(*) FROM settings"); err != nil {
		return model.State{}, false, fmt.Errorf("checking settings: %w", err)
	}
	if settingsCount == 0 {
		return model.State{}, false, nil
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, communication_periodicity, email, phone FROM companies ORDER BY position")
	if err != nil {
		return model.State{}, false, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CommunicationPeriodicity, &c.Email, &c.Phone); err != nil {
			return model.State{}, false, fmt.Errorf("scanning company row: %w", err)
		}
		state.Companies = append(state.Companies, c)
	}
	if err := rows.Err(); err != nil {
		return model.State{}, false, err
	}

	rows, err = s.db.QueryxContext(ctx,
		"SELECT id, name, description, sequence, mandatory FROM communication_methods ORDER BY position")
	if err != nil {
		return model.State{}, false, fmt.Errorf("querying communication methods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m model.CommunicationMethod
		var mandatory int
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Sequence, &mandatory); err != nil {
			return model.State{}, false, fmt.Errorf("scanning method row: %w", err)
		}
		m.Mandatory = mandatory != 0
		state.CommunicationMethods = append(state.CommunicationMethods, m)
	}
	if err := rows.Err(); err != nil {
		return model.State{}, false, err
	}

	rows, err = s.db.QueryxContext(ctx,
		"SELECT id, company_id, date, type, notes, status, response_date FROM communications ORDER BY position")
	if err != nil {
		return model.State{}, false, fmt.Errorf("querying communications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Communication
		var date string
		var responseDate *string
		if err := rows.Scan(&c.ID, &c.CompanyID, &date, &c.Type, &c.Notes, &c.Status, &responseDate); err != nil {
			return model.State{}, false, fmt.Errorf("scanning communication row: %w", err)
		}
		if c.Date, err = model.ParseDate(date); err != nil {
			return model.State{}, false, err
		}
		if responseDate != nil {
			rd, err := model.ParseDate(*responseDate)
			if err != nil {
				return model.State{}, false, err
			}
			c.ResponseDate = &rd
		}
		state.Communications = append(state.Communications, c)
	}
	if err := rows.Err(); err != nil {
		return model.State{}, false, err
	}

	var notifications, reminders, period int
	var workingDays string
	err = s.db.QueryRowxContext(ctx, `
		SELECT notifications_enabled, email_reminders, default_communication_period, working_days
		FROM settings WHERE id = 1`,
	).Scan(&notifications, &reminders, &period, &workingDays)
	if err != nil {
		return model.State{}, false, fmt.Errorf("reading settings: %w", err)
	}
	state.Settings.NotificationsEnabled = notifications != 0
	state.Settings.EmailReminders = reminders != 0
	state.Settings.DefaultCommunicationPeriod = period
	if err := json.Unmarshal([]byte(workingDays), &state.Settings.WorkingDays); err != nil {
		return model.State{}, false, fmt.Errorf("unmarshaling working days: %w", err)
	}

	return state, true, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
