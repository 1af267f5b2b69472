package database

import (
	"fmt"
	"testing"

	"finance-api/internal/config"
	"finance-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory SQLite database.
// The pool is pinned to one connection because every :memory: connection is a separate database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashed_password",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestCategory(t *testing.T, db *DB, user *models.User, name, entryType string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: user.ID,
		Name:   name,
		Type:   entryType,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

// CreateTestTransaction inserts a transaction dated date (YYYY-MM-DD) for the given user
func CreateTestTransaction(t *testing.T, db *DB, user *models.User, category *models.Category, entryType, amount, date string) *models.Transaction {
	t.Helper()

	parsed, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", date, err)
	}

	tx := &models.Transaction{
		UserID:          user.ID,
		Amount:          decimal.RequireFromString(amount),
		Type:            entryType,
		Date:            parsed,
		TransactionMode: "Cash",
	}
	if category != nil {
		tx.CategoryID = &category.ID
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return tx
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"budgets",
		"transactions",
		"categories",
		"audit_logs",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
