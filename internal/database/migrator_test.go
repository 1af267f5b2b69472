package database

import (
	"errors"
	"testing"
	"time"

	"finance-api/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetries shrinks the readiness loop for the duration of a test
func fastRetries(t *testing.T, retries int) {
	t.Helper()
	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("MIGRATIONS_PATH", "")
	runner := NewMigrationRunner(db)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, defaultMigrationsPath, runner.migrationsPath)

	t.Setenv("MIGRATIONS_PATH", "custom/migrations")
	assert.Equal(t, "custom/migrations", NewMigrationRunner(db).migrationsPath)
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 3)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = NewMigrationRunner(db).WaitForDatabase()

	assert.ErrorContains(t, err, "database not ready after 2 attempts")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{db: db, migrationsPath: "/nonexistent/migrations"}

	assert.NoError(t, runner.RunMigrations())
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{db: db, migrationsPath: "/nonexistent/migrations"}

	_, _, err = runner.GetMigrationStatus()

	assert.ErrorContains(t, err, "migrations directory not found")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	t.Setenv("AUTO_MIGRATE", "false")

	applied, err := RunMigrationsIfEnabled(&config.DatabaseConfig{})

	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestRunMigrationsIfEnabled_DatabaseNotReady(t *testing.T) {
	t.Setenv("AUTO_MIGRATE", "true")
	fastRetries(t, 1)

	cfg := &config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		User:     "nobody",
		Password: "nothing",
		Name:     "missing",
		SSLMode:  "disable",
	}

	applied, err := RunMigrationsIfEnabled(cfg)

	assert.False(t, applied)
	assert.ErrorContains(t, err, "database readiness check failed")
}
