package services

import (
	"testing"

	"foodmanager/config"
	"foodmanager/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the foods table.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// newMockDB wires gorm's Postgres dialector to sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)
	return db, mock
}

func strPtr(s string) *string { return &s }

func validInput() models.FoodInput {
	return models.FoodInput{
		Name:        "Nasi Goreng",
		Ingredients: "rice, egg",
		Description: "fried rice",
		Type:        "uph",
	}
}

// assertSameFood compares two foods field by field; timestamps by instant.
func assertSameFood(t *testing.T, want, got *models.Food) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Ingredients, got.Ingredients)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.ImageURL, got.ImageURL)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt %v != %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %v != %v", want.UpdatedAt, got.UpdatedAt)
}
