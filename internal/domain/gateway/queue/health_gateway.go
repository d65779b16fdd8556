package queue

import (
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqs"
)

// HealthChecker is implemented by queue consumers that report their state
type HealthChecker interface {
	HealthCheck() sqs.WorkerHealth
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker HealthChecker)
	UnregisterWorker(name string)
}
