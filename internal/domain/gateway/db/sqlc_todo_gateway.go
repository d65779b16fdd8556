package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"

	"github.com/google/uuid"
)

// todoColumns maps the todo fields to the columns of the todos table.
// The order is the scan order of every select.
var todoColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"created_at",
	"updated_at",
	"deleted_at",
	"completed_at",
}

var selectTodos = "SELECT " + strings.Join(todoColumns, ", ") + " FROM todos"

type SQLCTodoGateway struct {
	DB *sql.DB
}

var _ TodoGateway = (*SQLCTodoGateway)(nil)

func NewSQLCTodoGateway(db *sql.DB) *SQLCTodoGateway {
	return &SQLCTodoGateway{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*entity.Todo, error) {
	var (
		todo        entity.Todo
		description sql.NullString
		deletedAt   sql.NullTime
		completedAt sql.NullTime
	)

	err := row.Scan(&todo.ID, &todo.UserID, &todo.Title, &description,
		&todo.CreatedAt, &todo.UpdatedAt, &deletedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		todo.Description = &description.String
	}
	if deletedAt.Valid {
		todo.DeletedAt = &deletedAt.Time
	}
	if completedAt.Valid {
		todo.CompletedAt = &completedAt.Time
	}
	return &todo, nil
}

func (gateway *SQLCTodoGateway) FindByID(ctx context.Context, id string) (*entity.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	todo, err := scanTodo(gateway.DB.QueryRowContext(ctx, selectTodos+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find todo %s: %w", id, err)
	}
	return todo, nil
}

func (gateway *SQLCTodoGateway) FindMany(ctx context.Context, filter model.TodoFilter, offset int, limit *int) (todos []*entity.Todo, err error) {
	where, args := whereClause(filter)
	query := selectTodos + where + " ORDER BY created_at DESC, id DESC"

	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))
	if limit != nil {
		args = append(args, *limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := gateway.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	todos = make([]*entity.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (gateway *SQLCTodoGateway) Count(ctx context.Context, filter model.TodoFilter) (int64, error) {
	where, args := whereClause(filter)

	var count int64
	if err := gateway.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

func (gateway *SQLCTodoGateway) Create(ctx context.Context, todo *entity.Todo) error {
	if err := insertTodo(ctx, gateway.DB, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (gateway *SQLCTodoGateway) CreateAll(ctx context.Context, todos []*entity.Todo) (err error) {
	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin todo batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, todo := range todos {
		if err = insertTodo(ctx, tx, todo); err != nil {
			return fmt.Errorf("create todo batch: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit todo batch: %w", err)
	}
	return nil
}

func (gateway *SQLCTodoGateway) Update(ctx context.Context, todo *entity.Todo) error {
	result, err := gateway.DB.ExecContext(ctx, `
		UPDATE todos
		SET title = $1, description = $2, updated_at = $3, deleted_at = $4, completed_at = $5
		WHERE id = $6`,
		todo.Title, todo.Description, todo.UpdatedAt, todo.DeletedAt, todo.CompletedAt, todo.ID)
	if err != nil {
		return fmt.Errorf("update todo %s: %w", todo.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo %s: %w", todo.ID, err)
	}
	if affected == 0 {
		return ErrTodoNotUpdated
	}
	return nil
}

func (gateway *SQLCTodoGateway) PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := gateway.DB.ExecContext(ctx, `
		DELETE FROM todos
		WHERE deleted_at IS NOT NULL AND deleted_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge todos: %w", err)
	}
	return result.RowsAffected()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTodo(ctx context.Context, db execer, todo *entity.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}

	placeholders := make([]string, len(todoColumns))
	for i := range todoColumns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO todos ("+strings.Join(todoColumns, ", ")+") VALUES ("+strings.Join(placeholders, ", ")+")",
		todo.ID, todo.UserID, todo.Title, todo.Description,
		todo.CreatedAt, todo.UpdatedAt, todo.DeletedAt, todo.CompletedAt)
	return err
}

func whereClause(filter model.TodoFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conditions = append(conditions, "user_id = $"+strconv.Itoa(len(args)))
	}
	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
