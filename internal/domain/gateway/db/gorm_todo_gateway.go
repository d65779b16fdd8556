package db

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormTodoGateway struct {
	DB *gorm.DB
}

var _ TodoGateway = (*GormTodoGateway)(nil)

func NewGormTodoGateway(db *gorm.DB) *GormTodoGateway {
	return &GormTodoGateway{DB: db}
}

func (gateway *GormTodoGateway) FindByID(ctx context.Context, id string) (*entity.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var todo entity.Todo
	err := gateway.DB.WithContext(ctx).Where("id = ?", id).First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find todo %s: %w", id, err)
	}
	return &todo, nil
}

func (gateway *GormTodoGateway) FindMany(ctx context.Context, filter model.TodoFilter, offset int, limit *int) ([]*entity.Todo, error) {
	query := gateway.filtered(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset)
	if limit != nil {
		query = query.Limit(*limit)
	}

	todos := make([]*entity.Todo, 0)
	if err := query.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	return todos, nil
}

func (gateway *GormTodoGateway) Count(ctx context.Context, filter model.TodoFilter) (int64, error) {
	var count int64
	if err := gateway.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

func (gateway *GormTodoGateway) Create(ctx context.Context, todo *entity.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if err := gateway.DB.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (gateway *GormTodoGateway) CreateAll(ctx context.Context, todos []*entity.Todo) error {
	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, todo := range todos {
			if todo.ID == "" {
				todo.ID = uuid.New().String()
			}
			if err := tx.Create(todo).Error; err != nil {
				return fmt.Errorf("create todo batch: %w", err)
			}
		}
		return nil
	})
}

// Update writes the patchable columns of todo. Owner and creation time are never touched.
func (gateway *GormTodoGateway) Update(ctx context.Context, todo *entity.Todo) error {
	result := gateway.DB.WithContext(ctx).
		Model(&entity.Todo{}).
		Where("id = ?", todo.ID).
		Updates(map[string]any{
			"title":        todo.Title,
			"description":  todo.Description,
			"updated_at":   todo.UpdatedAt,
			"deleted_at":   todo.DeletedAt,
			"completed_at": todo.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update todo %s: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotUpdated
	}
	return nil
}

func (gateway *GormTodoGateway) PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := gateway.DB.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&entity.Todo{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge todos: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (gateway *GormTodoGateway) filtered(ctx context.Context, filter model.TodoFilter) *gorm.DB {
	query := gateway.DB.WithContext(ctx).Model(&entity.Todo{})
	if filter.OwnerID != "" {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	return query
}
