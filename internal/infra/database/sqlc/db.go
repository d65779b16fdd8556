package sqlc

import (
	"database/sql"
	"fmt"
	"todo-api/internal/infra/database"

	_ "github.com/lib/pq"
)

// Connect opens and pings the database/sql connection pool
func Connect() (*sql.DB, error) {
	db, err := sql.Open("postgres", database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
