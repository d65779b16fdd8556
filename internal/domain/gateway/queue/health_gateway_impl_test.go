package queue

import (
	"testing"
	"todo-api/internal/domain/model"
	"todo-api/pkg/sqs"

	"github.com/stretchr/testify/assert"
)

type stubWorker struct {
	status sqs.HealthStatus
}

func (w stubWorker) HealthCheck() sqs.WorkerHealth {
	return sqs.WorkerHealth{Status: w.status, Details: map[string]string{"queue": "todo-import"}}
}

func TestQueueHealthGateway_Health(t *testing.T) {
	gateway := NewQueueHealthGateway()
	assert.Equal(t, model.StatusUnknown, gateway.Health().Status)

	gateway.RegisterWorker("import", stubWorker{status: sqs.StatusUp})
	health := gateway.Health()
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "todo-import", health.Details["import_queue"])
	assert.Equal(t, "1", health.Details["workers_up"])

	gateway.RegisterWorker("other", stubWorker{status: sqs.StatusDown})
	health = gateway.Health()
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "1", health.Details["workers_down"])

	gateway.UnregisterWorker("other")
	assert.Equal(t, model.StatusUp, gateway.Health().Status)
}
