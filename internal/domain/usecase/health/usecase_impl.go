package health

import (
	"context"
	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cacheGateway cache.TodoListCache
	queueGateway queue.HealthGateway
}

// NewHealthUseCase builds the health use case. cacheGateway may be nil when the list cache is disabled.
func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.TodoListCache, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

// CheckHealth reports DOWN when the database or the cache is down. The queue only
// degrades the status when workers are registered.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dbHealth := useCase.dbGateway.Health(ctx)
	queueHealth := useCase.queueGateway.Health()

	cacheHealth := model.ComponentHealthStatus{
		Status:  model.StatusUnknown,
		Details: map[string]string{"message": "Cache disabled"},
	}
	if useCase.cacheGateway != nil {
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}

	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp ||
		cacheHealth.Status == model.StatusDown ||
		queueHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
	}
}
