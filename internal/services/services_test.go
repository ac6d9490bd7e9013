package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/gustavosampaioo/statusrotas/internal/models"
)

const bootstrapUsername = "admin"

// newTestDB opens a fresh in-memory SQLite database with the full
// schema migrated. Connections are pinned to one so every query sees
// the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Pop{}, &models.City{}, &models.Route{}))
	return db
}

// seedUser inserts an active account directly, bypassing the
// registration policy checks. Password is always "secret1".
func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:   username,
		Password:   string(hash),
		FullName:   "Test " + username,
		EmployeeID: "EMP-" + username,
		Role:       role,
		Active:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return seedUser(t, db, bootstrapUsername, models.RoleAdmin)
}
