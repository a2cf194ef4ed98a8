package models

import (
	"fmt"

	"github.com/nmoreno/tallerplus/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Workshop{},
		&Brand{},
		&VehicleModel{},
		&Vehicle{},
		&Part{},
		&LaborTask{},
		&QuotationRequest{},
		&Quotation{},
		&QuotationItem{},
		&WorkOrder{},
		&Appointment{},
		&Notification{},
		&FeatureFlag{},
		&AuditLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the feature flags the platform consults so a fresh
// database behaves predictably.
func SeedDefaultData() error {
	defaultFlags := []FeatureFlag{
		{Key: "customer-only", Enabled: false, Description: "Restrict user listing to CUSTOMER accounts"},
		{Key: "notifications-enabled", Enabled: true, Description: "Create in-app notifications on quotation and work order transitions"},
	}

	for _, flag := range defaultFlags {
		var count int64
		DB.Model(&FeatureFlag{}).Where("key = ?", flag.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&flag).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
