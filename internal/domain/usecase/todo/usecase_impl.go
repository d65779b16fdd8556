package todo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/numberutils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var todoRoles = []model.Role{model.RoleUser, model.RoleAdmin}

type todoUseCase struct {
	gateway     db.TodoGateway
	listCache   cache.TodoListCache
	queueSender queue.Sender
	eventsQueue string
	maxLimit    int
	now         func() time.Time
	listGroup   singleflight.Group
}

// NewTodoUseCase builds the todo use case. listCache and queueSender are optional.
func NewTodoUseCase(gateway db.TodoGateway, listCache cache.TodoListCache, queueSender queue.Sender, config Config) UseCase {
	now := config.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &todoUseCase{
		gateway:     gateway,
		listCache:   listCache,
		queueSender: queueSender,
		eventsQueue: config.EventsQueue,
		maxLimit:    config.MaxLimit,
		now:         now,
	}
}

func (uc *todoUseCase) List(ctx context.Context, params model.ListTodosParams) model.TodoResponse {
	caller, err := authorizedCaller(ctx)
	if err != nil {
		return model.Failure(err)
	}

	if numberutils.IsIntNegative(params.Offset) {
		return model.Failure(model.NewValidationError("offset", msg.GetMessage("todo.error.negative-offset")))
	}
	if params.Limit != nil {
		if numberutils.IsIntNegative(*params.Limit) {
			return model.Failure(model.NewValidationError("limit", msg.GetMessage("todo.error.negative-limit")))
		}
		if uc.maxLimit > 0 {
			limit := numberutils.MinInt(*params.Limit, uc.maxLimit)
			params.Limit = &limit
		}
	}

	page, err := uc.loadPage(ctx, caller, params)
	if err != nil {
		return model.Failure(err)
	}
	return model.TodoListResponse(page.Content, page.Total)
}

func (uc *todoUseCase) Get(ctx context.Context, id string) model.TodoResponse {
	caller, err := authorizedCaller(ctx)
	if err != nil {
		return model.Failure(err)
	}

	todo, err := uc.findOwnedTodo(ctx, caller, id)
	if err != nil {
		return model.Failure(err)
	}
	return model.SingleTodoResponse(todo)
}

func (uc *todoUseCase) Create(ctx context.Context, input model.CreateTodoInput) model.TodoResponse {
	caller, err := authorizedCaller(ctx)
	if err != nil {
		return model.Failure(err)
	}

	if isBlank(input.Title) {
		return model.Failure(model.NewValidationError("title", msg.GetMessage("todo.error.empty-title")))
	}

	todo := uc.newTodo(caller, input, uc.now())
	if err := uc.gateway.Create(ctx, todo); err != nil {
		return model.Failure(uc.persistenceError(caller, "create", err))
	}

	uc.afterWrite(ctx, caller, model.TodoCreated, todo)
	return model.SingleTodoResponse(todo)
}

// CreateMany stores the whole batch in one transaction or nothing at all
func (uc *todoUseCase) CreateMany(ctx context.Context, inputs []model.CreateTodoInput) model.TodoResponse {
	caller, err := authorizedCaller(ctx)
	if err != nil {
		return model.Failure(err)
	}

	if len(inputs) == 0 {
		return model.Failure(model.NewValidationError("todos", msg.GetMessage("todo.error.empty-batch")))
	}

	var errs []error
	for i, input := range inputs {
		if isBlank(input.Title) {
			field := fmt.Sprintf("todos[%d].title", i)
			errs = append(errs, model.NewValidationError(field, msg.GetMessage("todo.error.empty-title")))
		}
	}
	if len(errs) > 0 {
		return model.Failure(errors.Join(errs...))
	}

	now := uc.now()
	todos := make([]*entity.Todo, 0, len(inputs))
	for _, input := range inputs {
		todos = append(todos, uc.newTodo(caller, input, now))
	}

	if err := uc.gateway.CreateAll(ctx, todos); err != nil {
		return model.Failure(uc.persistenceError(caller, "create-many", err))
	}

	uc.invalidate(ctx, caller)
	uc.publishBatch(ctx, model.TodoCreated, todos)
	return model.TodoListResponse(todos, int64(len(todos)))
}

func (uc *todoUseCase) Delete(ctx context.Context, id string) model.TodoResponse {
	now := uc.now()
	return uc.mutate(ctx, id, model.TodoDeleted, now, func(*entity.Todo) (model.TodoPatch, error) {
		return model.TodoPatch{DeletedAt: model.Value(now)}, nil
	})
}

func (uc *todoUseCase) Complete(ctx context.Context, id string) model.TodoResponse {
	now := uc.now()
	return uc.mutate(ctx, id, model.TodoCompleted, now, func(*entity.Todo) (model.TodoPatch, error) {
		return model.TodoPatch{CompletedAt: model.Value(now)}, nil
	})
}

func (uc *todoUseCase) Reset(ctx context.Context, id string) model.TodoResponse {
	return uc.mutate(ctx, id, model.TodoReset, uc.now(), func(*entity.Todo) (model.TodoPatch, error) {
		return model.TodoPatch{CompletedAt: model.Null[time.Time]()}, nil
	})
}

// Update applies the caller's patch verbatim. Title is required, so it may
// be omitted but never cleared.
func (uc *todoUseCase) Update(ctx context.Context, id string, patch model.TodoPatch) model.TodoResponse {
	return uc.mutate(ctx, id, model.TodoUpdated, uc.now(), func(*entity.Todo) (model.TodoPatch, error) {
		if patch.Title.IsNull() {
			return patch, model.NewValidationError("title", msg.GetMessage("todo.error.null-title"))
		}
		if patch.Title.Set && isBlank(*patch.Title.Value) {
			return patch, model.NewValidationError("title", msg.GetMessage("todo.error.empty-title"))
		}
		return patch, nil
	})
}

func (uc *todoUseCase) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	purged, err := uc.gateway.PurgeDeletedBefore(ctx, uc.now().Add(-retention))
	if err != nil {
		return 0, model.NewPersistenceError(err)
	}
	if purged > 0 && uc.listCache != nil {
		if err := uc.listCache.Clear(ctx); err != nil {
			log.Warn(msg.GetMessage("todo.log.cache-failed", "clear", "*", err))
		}
	}
	return purged, nil
}

// mutate resolves the caller's todo, builds the patch and persists it
func (uc *todoUseCase) mutate(ctx context.Context, id string, event model.TodoEventType, now time.Time,
	buildPatch func(todo *entity.Todo) (model.TodoPatch, error)) model.TodoResponse {
	caller, err := authorizedCaller(ctx)
	if err != nil {
		return model.Failure(err)
	}

	todo, err := uc.findOwnedTodo(ctx, caller, id)
	if err != nil {
		return model.Failure(err)
	}

	patch, err := buildPatch(todo)
	if err != nil {
		return model.Failure(err)
	}

	updated, err := uc.applyAndPersist(ctx, caller, string(event), todo, patch, now)
	if err != nil {
		return model.Failure(err)
	}

	uc.afterWrite(ctx, caller, event, updated)
	return model.SingleTodoResponse(updated)
}

// findOwnedTodo fetches the todo by its id and checks it belongs to the caller.
// Soft deleted todos are returned as well so that they can be restored.
func (uc *todoUseCase) findOwnedTodo(ctx context.Context, caller model.Caller, id string) (*entity.Todo, error) {
	if isBlank(id) {
		return nil, model.NewValidationError("id", msg.GetMessage("todo.error.empty-id"))
	}

	todo, err := uc.gateway.FindByID(ctx, id)
	if err != nil {
		return nil, uc.persistenceError(caller, "find", err)
	}
	if todo == nil {
		return nil, model.NewNotFoundError()
	}
	if todo.UserID != caller.UserID {
		return nil, model.NewForbiddenError()
	}
	return todo, nil
}

// applyAndPersist merges patch into a copy of todo, refreshes updatedAt and stores it.
// updatedAt never moves backwards even if the clock does.
func (uc *todoUseCase) applyAndPersist(ctx context.Context, caller model.Caller, operation string, todo *entity.Todo,
	patch model.TodoPatch, now time.Time) (*entity.Todo, error) {
	updated := *todo
	patch.ApplyTo(&updated)

	if now.Before(updated.UpdatedAt) {
		now = updated.UpdatedAt
	}
	updated.UpdatedAt = now

	if err := uc.gateway.Update(ctx, &updated); err != nil {
		return nil, uc.persistenceError(caller, operation, err)
	}
	return &updated, nil
}

// loadPage serves the page from the list cache. The owner generation must be read
// before the store so a page racing a write lands under a dead generation.
func (uc *todoUseCase) loadPage(ctx context.Context, caller model.Caller, params model.ListTodosParams) (*model.Page[*entity.Todo], error) {
	if uc.listCache == nil {
		return uc.fetchPage(ctx, caller, params)
	}

	generation, err := uc.listCache.Generation(ctx, caller.UserID)
	if err != nil {
		log.Warn(msg.GetMessage("todo.log.cache-failed", "generation", caller.UserID, err))
		return uc.fetchPage(ctx, caller, params)
	}

	page, found, err := uc.listCache.Get(ctx, caller.UserID, generation, params)
	if err != nil {
		log.Warn(msg.GetMessage("todo.log.cache-failed", "get", caller.UserID, err))
	}
	if found {
		return page, nil
	}

	result, err, _ := uc.listGroup.Do(pageKey(caller.UserID, generation, params), func() (interface{}, error) {
		page, err := uc.fetchPage(ctx, caller, params)
		if err != nil {
			return nil, err
		}
		if err := uc.listCache.Set(ctx, caller.UserID, generation, page); err != nil {
			log.Warn(msg.GetMessage("todo.log.cache-failed", "set", caller.UserID, err))
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Page[*entity.Todo]), nil
}

// fetchPage loads the page and the total count in parallel
func (uc *todoUseCase) fetchPage(ctx context.Context, caller model.Caller, params model.ListTodosParams) (*model.Page[*entity.Todo], error) {
	filter := model.TodoFilter{OwnerID: caller.UserID}

	var wg sync.WaitGroup
	var todos []*entity.Todo
	var total int64
	var todosErr, countErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		todos, todosErr = uc.gateway.FindMany(ctx, filter, params.Offset, params.Limit)
	}()
	go func() {
		defer wg.Done()
		total, countErr = uc.gateway.Count(ctx, filter)
	}()
	wg.Wait()

	if todosErr != nil {
		return nil, uc.persistenceError(caller, "list", todosErr)
	}
	if countErr != nil {
		return nil, uc.persistenceError(caller, "count", countErr)
	}
	return model.NewPage(todos, params.Offset, params.Limit, total), nil
}

func (uc *todoUseCase) newTodo(caller model.Caller, input model.CreateTodoInput, now time.Time) *entity.Todo {
	todo := &entity.Todo{
		ID:        uuid.New().String(),
		UserID:    caller.UserID,
		Title:     input.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	model.TodoPatch{
		Description: model.Field[string]{Set: true, Value: input.Description},
		CompletedAt: model.Field[time.Time]{Set: true, Value: input.CompletedAt},
	}.ApplyTo(todo)
	return todo
}

func (uc *todoUseCase) afterWrite(ctx context.Context, caller model.Caller, event model.TodoEventType, todo *entity.Todo) {
	uc.invalidate(ctx, caller)
	uc.publish(ctx, event, todo)
}

func (uc *todoUseCase) invalidate(ctx context.Context, caller model.Caller) {
	if uc.listCache == nil {
		return
	}
	if err := uc.listCache.Invalidate(ctx, caller.UserID); err != nil {
		log.Warn(msg.GetMessage("todo.log.cache-failed", "invalidate", caller.UserID, err))
	}
}

func (uc *todoUseCase) publish(ctx context.Context, eventType model.TodoEventType, todo *entity.Todo) {
	if uc.queueSender == nil || uc.eventsQueue == "" {
		return
	}

	event := model.TodoEvent{
		Type:       eventType,
		TodoID:     todo.ID,
		UserID:     todo.UserID,
		OccurredAt: todo.UpdatedAt,
	}
	if err := uc.queueSender.SendMessage(ctx, uc.eventsQueue, event); err != nil {
		log.Warn(msg.GetMessage("todo.log.event-failed", eventType, todo.ID, err))
	}
}

// publishBatch sends one event per todo, keyed by todo id in the batch
func (uc *todoUseCase) publishBatch(ctx context.Context, eventType model.TodoEventType, todos []*entity.Todo) {
	if uc.queueSender == nil || uc.eventsQueue == "" {
		return
	}

	messages := make([]queue.BatchMessage, 0, len(todos))
	for _, todo := range todos {
		messages = append(messages, queue.BatchMessage{
			MessageID: todo.ID,
			Body: model.TodoEvent{
				Type:       eventType,
				TodoID:     todo.ID,
				UserID:     todo.UserID,
				OccurredAt: todo.UpdatedAt,
			},
		})
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.eventsQueue, messages)
	if err != nil {
		log.Warn(msg.GetMessage("todo.log.event-failed", eventType, "batch", err))
		return
	}
	for _, id := range result.Failed {
		log.Warn(msg.GetMessage("todo.log.event-failed", eventType, id, "rejected by queue"))
	}
}

func (uc *todoUseCase) persistenceError(caller model.Caller, operation string, err error) error {
	log.Error(msg.GetMessage("todo.log.persistence-failed", operation, caller.UserID, err),
		zap.String("operation", operation),
		zap.String("userId", caller.UserID),
		zap.Error(err))
	return model.NewPersistenceError(err)
}

// authorizedCaller returns the session caller if it may use the todo operations
func authorizedCaller(ctx context.Context) (model.Caller, error) {
	caller, ok := model.CallerFromContext(ctx)
	if !ok {
		return model.Caller{}, model.NewUnauthenticatedError()
	}
	if !model.Authorize(caller.Role, todoRoles...) {
		return model.Caller{}, model.NewForbiddenError()
	}
	return caller, nil
}

func pageKey(ownerID string, generation int64, params model.ListTodosParams) string {
	limit := "all"
	if params.Limit != nil {
		limit = strconv.Itoa(*params.Limit)
	}
	return ownerID + ":" + strconv.FormatInt(generation, 10) + ":" + strconv.Itoa(params.Offset) + ":" + limit
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
