package gorm

import (
	"fmt"
	"todo-api/internal/infra/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the gorm connection pool
func Connect() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm connection: %w", err)
	}
	return db, nil
}
