package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todo-api/configs"
	_ "todo-api/docs"
	"todo-api/internal/application/controller"
	"todo-api/internal/application/middleware"
	"todo-api/internal/application/processor"
	"todo-api/internal/application/resolver"
	"todo-api/internal/application/schedule"
	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/gateway/session"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/todo"
	awsinfra "todo-api/internal/infra/aws"
	cacheinfra "todo-api/internal/infra/cache"
	"todo-api/internal/infra/database"
	gormdb "todo-api/internal/infra/database/gorm"
	"todo-api/internal/infra/database/sqlc"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
	pkgsqs "todo-api/pkg/sqs"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start", configs.Env.ApplicationName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)

	todoGateway, healthDBGateway := initDatabase()

	redisClient, err := cacheinfra.NewRedisClient(ctx)
	if err != nil {
		log.Fatal(msg.GetMessage("app.redis.connect-failed", err))
	}
	defer redisClient.Close()

	var listCache cache.TodoListCache
	if resource.GetBool("app.todo.list.cache.enabled") {
		listCache = cache.NewRedisTodoListCache(redisClient, resource.GetDuration("app.todo.list.cache.ttl"))
	}

	eventsEnabled := resource.GetBool("app.todo.events.enabled")
	importEnabled := resource.GetBool("app.todo.import.enabled")

	var sqsClient *sqs.Client
	if eventsEnabled || importEnabled {
		awsConfig, err := awsinfra.LoadConfig(ctx)
		if err != nil {
			log.Fatal(msg.GetMessage("app.aws.config-failed", err))
		}
		sqsClient = awsinfra.NewSqsClient(awsConfig)
	}

	// Init UseCase
	todoConfig := todo.Config{MaxLimit: resource.GetInt("app.todo.list.max-limit")}
	var queueSender queue.Sender
	if eventsEnabled {
		queueSender = awsinfra.NewSQSSenderAdapter(sqsClient)
		todoConfig.EventsQueue = resource.GetString("app.todo.events.queue-name")
	}
	todoUseCase := todo.NewTodoUseCase(todoGateway, listCache, queueSender, todoConfig)

	queueHealthGateway := queue.NewQueueHealthGateway()
	healthUseCase := health.NewHealthUseCase(healthDBGateway, listCache, queueHealthGateway)

	// Init Workers
	if importEnabled {
		startImportWorker(ctx, sqsClient, todoUseCase, queueHealthGateway)
	}

	// Init Schedule
	if resource.GetBool("app.todo.purge.enabled") {
		scheduler := initPurgeScheduler(redisClient, todoUseCase)
		defer scheduler.Stop()
	}

	// Init Controller
	schema, err := resolver.NewSchema(todoUseCase)
	if err != nil {
		log.Fatalf("Invalid GraphQL schema: %v", err)
	}

	sessionGateway := session.NewRedisSessionGateway(redisClient, resource.GetString("app.session.key-prefix"))
	api := e.Group(resource.GetString("app.server.context-path"),
		middleware.Session(sessionGateway, resource.GetString("app.session.cookie-name")))

	healthController := controller.NewHealthController(api, healthUseCase)
	graphQLController := controller.NewGraphQLController(api, schema)

	// Init Routes
	healthController.InitHealthRoutes()
	graphQLController.InitGraphQLRoutes()
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start Routes
	port := resource.GetString("app.server.port")
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err.Error())
		}
	}()
	log.Info(msg.GetMessage("app.started", configs.Env.ApplicationName, port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.shutdown", configs.Env.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(err.Error())
	}
}

// initDatabase opens the configured client and builds its gateways
func initDatabase() (db.TodoGateway, db.HealthDBGateway) {
	client := database.Client()
	name := resource.GetString("app.db.database")

	if client == database.ClientSQL {
		sqlDB, err := sqlc.Connect()
		if err != nil {
			log.Fatal(msg.GetMessage("app.db.connect-failed", err))
		}
		log.Info(msg.GetMessage("app.db.connected", name, client))
		return db.NewSQLCTodoGateway(sqlDB), db.NewSQLCHealthDBGateway(sqlDB)
	}

	gormDB, err := gormdb.Connect()
	if err != nil {
		log.Fatal(msg.GetMessage("app.db.connect-failed", err))
	}
	log.Info(msg.GetMessage("app.db.connected", name, client))
	return db.NewGormTodoGateway(gormDB), db.NewGormHealthDBGateway(gormDB)
}

func startImportWorker(ctx context.Context, sqsClient *sqs.Client, todoUseCase todo.UseCase, healthGateway *queue.QueueHealthGateway) {
	queueName := resource.GetString("app.todo.import.queue-name")

	worker, err := pkgsqs.NewWorker(ctx, sqsClient, queueName, processor.NewTodoImportProcessor(todoUseCase), &pkgsqs.WorkerConfig{
		PoolSize: resource.GetInt("app.todo.import.pool-size"),
		LogLevel: pkgsqs.ErrorLevel,
	})
	if err != nil {
		log.Fatal(msg.GetMessage("app.queue.worker-failed", queueName, err))
	}

	healthGateway.RegisterWorker(queueName, worker)
	go worker.Start(ctx)
	log.Info(msg.GetMessage("app.queue.worker-started", queueName))
}

func initPurgeScheduler(redisClient *redis.Client, todoUseCase todo.UseCase) *schedule.TodoScheduler {
	locker := schedule.NewRedisLocker(redisClient, "purge-deleted", resource.GetDuration("app.todo.purge.lock-ttl"))
	scheduler := schedule.NewTodoScheduler(todoUseCase, locker, schedule.TodoSchedulerConfig{
		CronExpression: resource.GetString("app.todo.purge.cron"),
		Retention:      resource.GetDuration("app.todo.purge.retention"),
	})

	if err := scheduler.InitTodoScheduleTasks(); err != nil {
		log.Fatalf("Invalid purge schedule: %v", err)
	}
	return scheduler
}
