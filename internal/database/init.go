package database

import (
	"database/sql"
	"fmt"

	"github.com/Harmonic/harmonic/internal/database/schema"
)

// InitializeDatabase creates the application tables if they don't exist and
// installs the profile trigger when the auth schema is present
func InitializeDatabase(db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if _, err := InstallAuthTrigger(db); err != nil {
		return err
	}
	return nil
}

// InstallAuthTrigger reports false without error when auth.users is missing,
// as on a plain Postgres used for tests
func InstallAuthTrigger(db *sql.DB) (bool, error) {
	var exists bool
	if err := db.QueryRow(schema.AuthUsersExistsQuery).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check auth schema: %w", err)
	}
	if !exists {
		return false, nil
	}

	for _, query := range schema.AuthTriggerDefinitions {
		if _, err := db.Exec(query); err != nil {
			return false, fmt.Errorf("failed to install auth trigger: %w", err)
		}
	}
	return true, nil
}

// CleanDatabase drops all application tables, used by tests
func CleanDatabase(db *sql.DB) error {
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
