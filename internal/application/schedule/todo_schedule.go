package schedule

import (
	"context"
	"errors"
	"time"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"

	"github.com/robfig/cron/v3"
)

const lockNamespace = "todo-schedules"

// Locker runs fn while holding a lock shared by every instance of the service
type Locker interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// RedisLocker acquires a fresh redis lock on every run
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, key: key, ttl: ttl}
}

func (l *RedisLocker) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return redis.WithLock(ctx, redis.NewLock(l.client, lockNamespace, l.key, l.ttl), fn)
}

// TodoSchedulerConfig holds configuration for the todo retention purge
type TodoSchedulerConfig struct {
	CronExpression string
	Retention      time.Duration
	Timeout        time.Duration
}

// TodoScheduler physically removes the todos soft deleted longer than the retention
type TodoScheduler struct {
	cron    *cron.Cron
	useCase todo.UseCase
	locker  Locker
	config  TodoSchedulerConfig
}

func NewTodoScheduler(useCase todo.UseCase, locker Locker, config TodoSchedulerConfig) *TodoScheduler {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Minute
	}
	return &TodoScheduler{cron: cron.New(), useCase: useCase, locker: locker, config: config}
}

// InitTodoScheduleTasks registers the purge job and starts the cron
func (scheduler *TodoScheduler) InitTodoScheduleTasks() error {
	if _, err := scheduler.cron.AddFunc(scheduler.config.CronExpression, scheduler.PurgeDeletedTodos); err != nil {
		return err
	}

	scheduler.cron.Start()
	return nil
}

// Stop stops the cron and waits for a running job to finish
func (scheduler *TodoScheduler) Stop() {
	<-scheduler.cron.Stop().Done()
}

func (scheduler *TodoScheduler) PurgeDeletedTodos() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduler.config.Timeout)
	defer cancel()

	err := scheduler.locker.Run(ctx, func(ctx context.Context) error {
		log.Info(msg.GetMessage("todo.purge.start", time.Now().UTC().Add(-scheduler.config.Retention).Format(time.RFC3339)))

		purged, err := scheduler.useCase.PurgeDeleted(ctx, scheduler.config.Retention)
		if err != nil {
			return err
		}

		log.Info(msg.GetMessage("todo.purge.end", purged))
		return nil
	})

	if errors.Is(err, redis.ErrLockNotAcquired) {
		log.Info(msg.GetMessage("todo.purge.skipped"))
		return
	}
	if err != nil {
		log.Error(msg.GetMessage("todo.purge.failed", err))
	}
}
