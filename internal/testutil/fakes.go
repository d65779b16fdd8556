package testutil

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/gateway/session"
	"todo-api/internal/domain/model"
)

// FakeTodoListCache is an in-memory cache.TodoListCache with per owner generations
type FakeTodoListCache struct {
	mu          sync.Mutex
	entries     map[string]map[string]model.Page[*entity.Todo]
	generations map[string]int64

	GenerationErr error
	GetErr        error
	SetErr        error
	InvalidateErr error

	Invalidations int
}

var _ cache.TodoListCache = (*FakeTodoListCache)(nil)

func NewFakeTodoListCache() *FakeTodoListCache {
	return &FakeTodoListCache{
		entries:     make(map[string]map[string]model.Page[*entity.Todo]),
		generations: make(map[string]int64),
	}
}

func windowKey(generation int64, offset int, limit *int) string {
	if limit == nil {
		return fmt.Sprintf("%d:%d:all", generation, offset)
	}
	return fmt.Sprintf("%d:%d:%d", generation, offset, *limit)
}

func (f *FakeTodoListCache) Generation(_ context.Context, ownerID string) (int64, error) {
	if f.GenerationErr != nil {
		return 0, f.GenerationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generations[ownerID], nil
}

func (f *FakeTodoListCache) Get(_ context.Context, ownerID string, generation int64, params model.ListTodosParams) (*model.Page[*entity.Todo], bool, error) {
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	page, ok := f.entries[ownerID][windowKey(generation, params.Offset, params.Limit)]
	if !ok {
		return nil, false, nil
	}
	return &page, true, nil
}

func (f *FakeTodoListCache) Set(_ context.Context, ownerID string, generation int64, page *model.Page[*entity.Todo]) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries[ownerID] == nil {
		f.entries[ownerID] = make(map[string]model.Page[*entity.Todo])
	}
	f.entries[ownerID][windowKey(generation, page.Offset, page.Limit)] = *page
	return nil
}

// Invalidate moves the owner to the next generation. Pages of older generations stay
// stored, like redis keys waiting for their TTL, but are no longer reachable.
func (f *FakeTodoListCache) Invalidate(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Invalidations++
	if f.InvalidateErr != nil {
		return f.InvalidateErr
	}
	f.generations[ownerID]++
	return nil
}

func (f *FakeTodoListCache) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string]map[string]model.Page[*entity.Todo])
	return nil
}

// Cached reports whether any window of the current generation of ownerID is cached
func (f *FakeTodoListCache) Cached(ownerID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strconv.FormatInt(f.generations[ownerID], 10) + ":"
	for key := range f.entries[ownerID] {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (f *FakeTodoListCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: map[string]string{}}
}

// FakeSender records the messages sent through queue.Sender
type FakeSender struct {
	mu       sync.Mutex
	Messages map[string][]any
	Err      error
}

var _ queue.Sender = (*FakeSender)(nil)

func NewFakeSender() *FakeSender {
	return &FakeSender{Messages: make(map[string][]any)}
}

func (f *FakeSender) SendMessage(_ context.Context, queueName string, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Messages[queueName] = append(f.Messages[queueName], body)
	return nil
}

func (f *FakeSender) SendMessageBatch(ctx context.Context, queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	result := &queue.BatchResult{Successful: []string{}, Failed: []string{}}
	for _, message := range messages {
		if err := f.SendMessage(ctx, queueName, message.Body); err != nil {
			result.Failed = append(result.Failed, message.MessageID)
			continue
		}
		result.Successful = append(result.Successful, message.MessageID)
	}
	return result, nil
}

// Sent returns a copy of the messages sent to queueName
func (f *FakeSender) Sent(queueName string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.Messages[queueName]...)
}

// FakeSessionGateway resolves callers from a fixed map of session ids
type FakeSessionGateway struct {
	Sessions map[string]model.Caller
	Err      error
}

var _ session.SessionGateway = (*FakeSessionGateway)(nil)

func (f *FakeSessionGateway) FindCaller(_ context.Context, sessionID string) (*model.Caller, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	caller, ok := f.Sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &caller, nil
}
