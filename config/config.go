package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/models"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	JWTSecret        string
	JWTExpireMinutes int
	AdminEmail       string
	AdminPassword    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpireMinutes: 30,
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	if minutes := os.Getenv("JWT_EXPIRE_MINUTES"); minutes != "" {
		var parsed int
		if _, err := fmt.Sscanf(minutes, "%d", &parsed); err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRE_MINUTES: %q", minutes)
		}
		cfg.JWTExpireMinutes = parsed
	}

	return cfg, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

// dropLegacyRegistrationConstraint removes the historical uniqueness
// constraint on registrations. Duplicate checks live in the attendee
// service so that soft-deleted rows do not block re-registration.
// Best effort: the constraint is absent on fresh databases.
func dropLegacyRegistrationConstraint(db *gorm.DB) {
	db.Exec("ALTER TABLE registrations DROP CONSTRAINT IF EXISTS unique_user_event_registration")
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.Event{}, &models.Session{}, &models.Registration{})
	if err != nil {
		return nil, err
	}

	dropLegacyRegistrationConstraint(db)

	if err := SeedAdmin(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedAdmin creates the bootstrap admin account when configured and
// not already present. Admins cannot be created through the API.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	if result := db.Where("email = ?", cfg.AdminEmail).First(&existing); result.Error == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    cfg.AdminEmail,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	return db.Create(&admin).Error
}
