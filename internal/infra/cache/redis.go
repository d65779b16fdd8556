package cache

import (
	"context"
	"fmt"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
)

// NewRedisClient connects to the redis configured in app.redis
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))

	client, err := redis.NewClient(config)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
