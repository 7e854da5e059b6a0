package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_parties",
		SQL: `CREATE TABLE IF NOT EXISTS parties (
  id             BIGSERIAL   PRIMARY KEY,
  first_name     TEXT        NOT NULL,
  last_name      TEXT        NOT NULL,
  dob            DATE        NOT NULL,
  gender         TEXT        NOT NULL,
  ssn            TEXT        NOT NULL UNIQUE,
  address_full   TEXT        NOT NULL,
  address_city   TEXT        NOT NULL,
  address_zip    TEXT        NOT NULL,
  address_state  TEXT        NOT NULL,
  marital_status TEXT        NOT NULL DEFAULT 'single',
  phone_number   TEXT        NOT NULL UNIQUE,
  email          TEXT        NOT NULL UNIQUE,
  dependants     SMALLINT    NOT NULL DEFAULT 0,
  active         BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_employee_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS employee_profiles (
  id                BIGSERIAL   PRIMARY KEY,
  party_id          BIGINT      NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
  employer_id       TEXT        NOT NULL,
  compensation_type TEXT        NOT NULL DEFAULT 'hourly',
  date_hired        DATE        NOT NULL,
  date_offboarded   DATE,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_contractor_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS contractor_profiles (
  id                  BIGSERIAL   PRIMARY KEY,
  party_id            BIGINT      NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
  employer_id         TEXT        NOT NULL,
  contract_start_date DATE        NOT NULL,
  contract_end_date   DATE,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            BIGSERIAL   PRIMARY KEY,
  party_id      BIGINT      NOT NULL REFERENCES parties(id),
  document_type TEXT        NOT NULL,
  document_name TEXT        NOT NULL,
  version       INT         NOT NULL CHECK (version >= 1),
  file_name     TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL DEFAULT '',
  status        TEXT        NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'stored')),
  size          BIGINT      NOT NULL CHECK (size >= 0),
  content_type  TEXT        NOT NULL,
  uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  uploaded_by   TEXT,
  expiry_date   DATE,
  deleted_at    TIMESTAMPTZ,
  deleted_by    TEXT
);`,
	},
	{
		// Backs the strictly-increasing-unique version invariant; concurrent
		// creates for the same group surface as a conflict and are retried.
		Name: "create_unique_index_documents_version_group",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_documents_version_group
  ON documents (party_id, document_type, document_name, version);`,
	},
	{
		Name: "create_index_documents_party_uploaded",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_party_uploaded ON documents (party_id, uploaded_at DESC, id DESC);`,
	},
	{
		Name: "create_index_employee_profiles_party",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_employee_profiles_party ON employee_profiles (party_id);`,
	},
	{
		Name: "create_index_contractor_profiles_party",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contractor_profiles_party ON contractor_profiles (party_id);`,
	},
}

// EnsureMigrated checks whether the 'documents' table exists and runs the
// idempotent migration steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()

	log.Info("db_migration_check", zap.String("db_host", dbHost))

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("db_host", dbHost),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("db_host", dbHost),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.String("db_host", dbHost),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("db_host", dbHost),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
