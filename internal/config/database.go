package config

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB opens the configured database, runs migrations and seeds the
// bootstrap admin account on first run.
func InitDB(cfg Config) {
	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Pop{}, &models.City{}, &models.Route{})
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	if err := SeedBootstrapAdmin(db, cfg.BootstrapAdminUser, cfg.BootstrapAdminPassword); err != nil {
		log.Fatalf("bootstrap admin seeding failed: %v", err)
	}

	// Assign to global
	DB = db
}

func openDB(cfg Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}
}

// SeedBootstrapAdmin creates the reserved admin account if the users
// table does not contain it yet. The account is always active and
// always role admin; deactivation refuses to touch it.
func SeedBootstrapAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:   username,
		Password:   string(hash),
		FullName:   "System Administrator",
		EmployeeID: "ADMIN-0001",
		Role:       models.RoleAdmin,
		Active:     true,
	}
	return db.Create(&admin).Error
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
