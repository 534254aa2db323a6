package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Version 1: measurements. Version 2: export_runs.
const currentSchemaVersion = 2

func (db *DB) initializeSchema() error {
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		for _, create := range []func(*sql.Tx) error{
			createSchemaVersionTable,
			createMeasurementsTable,
			createExportRunsTable,
		} {
			if err := create(tx); err != nil {
				return err
			}
		}
		return setSchemaVersion(tx, currentSchemaVersion)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	db.logger.Info("Database schema initialized", "version", currentSchemaVersion)
	return nil
}

func (db *DB) runMigrations() error {
	version, err := db.getSchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version == currentSchemaVersion {
		db.logger.Debug("Database schema is up to date", "version", version)
		return nil
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	db.logger.Info("Running database migrations",
		"from_version", version,
		"to_version", currentSchemaVersion,
	)

	err = db.WithTx(context.Background(), func(tx *sql.Tx) error {
		if err := createSchemaVersionTable(tx); err != nil {
			return err
		}
		if version < 1 {
			if err := createMeasurementsTable(tx); err != nil {
				return err
			}
		}
		if version < 2 {
			if err := createExportRunsTable(tx); err != nil {
				return err
			}
		}
		return setSchemaVersion(tx, currentSchemaVersion)
	})
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (db *DB) getSchemaVersion() (int, error) {
	var name string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&name)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return version, err
}

func setSchemaVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

func createSchemaVersionTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	return err
}

// createMeasurementsTable creates the measurement metadata table. point_id is
// written at most once by the exporter.
func createMeasurementsTable(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS measurements (
			signal_id TEXT PRIMARY KEY,
			point_tag TEXT NOT NULL DEFAULT '',
			point_id TEXT,
			device TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			signal_type TEXT NOT NULL DEFAULT '',
			phase TEXT NOT NULL DEFAULT '',
			phasor_type TEXT NOT NULL DEFAULT '',
			phasor_label TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_measurements_device ON measurements(device)`)
	return err
}

func createExportRunsTable(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS export_runs (
			run_id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			total_records INTEGER NOT NULL,
			rows_emitted INTEGER NOT NULL,
			excluded_too_long INTEGER NOT NULL,
			generated INTEGER NOT NULL,
			persisted INTEGER NOT NULL,
			persist_skipped INTEGER NOT NULL,
			unnameable INTEGER NOT NULL,
			duplicates_dropped INTEGER NOT NULL,
			output TEXT NOT NULL DEFAULT '',
			checksum TEXT NOT NULL DEFAULT ''
		)
	`); err != nil {
		return err
	}
	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_export_runs_started ON export_runs(started_at)`)
	return err
}
