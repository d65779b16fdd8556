package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

const TodoListCacheName = "todo-list"

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

type RedisTodoListCache struct {
	cache  *redis.Cache
	health *redis.HealthChecker
}

var _ TodoListCache = (*RedisTodoListCache)(nil)

func NewRedisTodoListCache(client *redis.Client, ttl time.Duration) *RedisTodoListCache {
	opts := redis.NewCacheOptions().WithCacheName(TodoListCacheName).WithTTL(ttl)
	return &RedisTodoListCache{
		cache:  redis.NewCache(client, opts),
		health: redis.NewHealthChecker(client),
	}
}

func (c *RedisTodoListCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	return c.cache.Counter(ctx, generationKey(ownerID))
}

func (c *RedisTodoListCache) Get(ctx context.Context, ownerID string, generation int64, params model.ListTodosParams) (*model.Page[*entity.Todo], bool, error) {
	var page model.Page[*entity.Todo]
	found, err := c.cache.Get(ctx, listKey(ownerID, generation, params.Offset, params.Limit), &page)
	if err != nil || !found {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *RedisTodoListCache) Set(ctx context.Context, ownerID string, generation int64, page *model.Page[*entity.Todo]) error {
	return c.cache.Set(ctx, listKey(ownerID, generation, page.Offset, page.Limit), page)
}

// Invalidate bumps the owner generation, then drops the pages of the previous one
func (c *RedisTodoListCache) Invalidate(ctx context.Context, ownerID string) error {
	generation, err := c.cache.Increment(ctx, generationKey(ownerID))
	if err != nil {
		return err
	}
	return c.cache.Clear(ctx, generationPattern(ownerID, generation-1))
}

// Clear drops the cached pages of every owner. Generations are kept.
func (c *RedisTodoListCache) Clear(ctx context.Context) error {
	return c.cache.Clear(ctx, "owner:*:gen:*")
}

func (c *RedisTodoListCache) Health(ctx context.Context) model.ComponentHealthStatus {
	check := c.health.HealthCheck(ctx)
	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}

func generationKey(ownerID string) string {
	return "owner:" + ownerID + ":generation"
}

func listKey(ownerID string, generation int64, offset int, limit *int) string {
	limitPart := "all"
	if limit != nil {
		limitPart = strconv.Itoa(*limit)
	}
	return fmt.Sprintf("owner:%s:gen:%d:offset:%d:limit:%s", ownerID, generation, offset, limitPart)
}

// generationPattern matches every page of one owner generation. The owner id is
// escaped so it cannot widen the SCAN to other owners.
func generationPattern(ownerID string, generation int64) string {
	return fmt.Sprintf("owner:%s:gen:%d:*", globEscaper.Replace(ownerID), generation)
}
