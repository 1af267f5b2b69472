package database

import (
	"testing"

	"finance-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_MigratesSchema(t *testing.T) {
	db := SetupTestDB(t)

	for _, table := range []string{"users", "audit_logs", "categories", "transactions", "budgets"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NoError(t, db.HealthCheck())
}

func TestCategoryUniqueness_IsPerUser(t *testing.T) {
	db := SetupTestDB(t)
	alice := CreateTestUser(t, db, "alice@example.com")
	bob := CreateTestUser(t, db, "bob@example.com")

	CreateTestCategory(t, db, alice, "Groceries", models.TypeExpense)

	duplicate := &models.Category{UserID: alice.ID, Name: "Groceries", Type: models.TypeExpense}
	assert.Error(t, db.Create(duplicate).Error)

	// Same name and type for another user is a different category
	other := &models.Category{UserID: bob.ID, Name: "Groceries", Type: models.TypeExpense}
	require.NoError(t, db.Create(other).Error)

	// Same name with the other type is also distinct
	income := &models.Category{UserID: alice.ID, Name: "Groceries", Type: models.TypeIncome}
	require.NoError(t, db.Create(income).Error)
}

func TestCleanupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	user := CreateTestUser(t, db, "cleanup@example.com")
	CreateTestTransaction(t, db, user, nil, models.TypeExpense, "10.00", "2024-01-01")

	CleanupTestDB(t, db)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
