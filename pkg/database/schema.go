package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id              VARCHAR(36) PRIMARY KEY,
		student_no      VARCHAR(20) NOT NULL UNIQUE,
		name            VARCHAR(50) NOT NULL,
		gender          SMALLINT    NOT NULL,
		age             INTEGER,
		major           VARCHAR(100) NOT NULL DEFAULT '',
		class_name      VARCHAR(50)  NOT NULL DEFAULT '',
		phone           VARCHAR(20)  NOT NULL DEFAULT '',
		email           VARCHAR(100) NOT NULL DEFAULT '',
		enrollment_date DATE,
		status          SMALLINT    NOT NULL DEFAULT 1,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_name ON students (name)`,
	`CREATE INDEX IF NOT EXISTS idx_students_class_name ON students (class_name)`,
}

// Migrate creates the students table and its indexes when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
