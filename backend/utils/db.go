package utils

import (
	"fmt"

	"classhub/backend/config"
	"classhub/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с Postgres. TranslateError включён, чтобы
// нарушения уникальных индексов приходили как gorm.ErrDuplicatedKey.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate создает таблицы для всех доменных моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Grade{},
		&models.Notification{},
	)
}
