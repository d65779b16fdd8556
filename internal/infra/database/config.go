package database

import (
	"fmt"
	"todo-api/pkg/resource"
)

const (
	ClientGorm = "gorm"
	ClientSQL  = "sql"
)

// Client returns the configured database client, gorm or sql
func Client() string {
	if resource.GetString("app.db.client") == ClientSQL {
		return ClientSQL
	}
	return ClientGorm
}

// DSN builds the postgres connection string from app.db properties
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		resource.GetString("app.db.host"),
		resource.GetString("app.db.port"),
		resource.GetString("app.db.username"),
		resource.GetString("app.db.password"),
		resource.GetString("app.db.database"),
		sslMode(),
		resource.GetString("app.db.schema"),
	)
}

func sslMode() string {
	if mode := resource.GetString("app.db.ssl-mode"); mode != "" {
		return mode
	}
	return "disable"
}
