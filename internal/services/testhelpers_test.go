package services

import (
	"testing"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second pool connection would see its own empty in-memory database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Workshop{},
		&models.Brand{},
		&models.VehicleModel{},
		&models.Vehicle{},
		&models.Part{},
		&models.LaborTask{},
		&models.QuotationRequest{},
		&models.Quotation{},
		&models.QuotationItem{},
		&models.WorkOrder{},
		&models.Appointment{},
		&models.Notification{},
		&models.FeatureFlag{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:            "test-secret",
		AccessExpireMin:   60,
		RefreshExpireDays: 30,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func disabledEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{Enabled: false, FrontendURL: "http://localhost:3000"}, nil)
}
