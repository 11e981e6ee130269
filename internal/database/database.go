package database

import (
	"fmt"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移并初始化全局统计单行
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.DonorProfileModel{},
		&model.DonationRecordModel{},
		&model.BadgeModel{},
		&model.CounterModel{},
		&model.GlobalStatsModel{},
		&model.EntityModel{},
		&model.EventModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 全局统计从系统初始化时就存在
	stats := model.GlobalStatsModel{
		Id:                   model.GlobalStatsId,
		TotalDonationsAmount: "0",
	}
	if err := db.FirstOrCreate(&stats, "id = ?", model.GlobalStatsId).Error; err != nil {
		return fmt.Errorf("failed to init global stats: %w", err)
	}

	return nil
}
