package session

import (
	"context"
	"todo-api/internal/domain/model"
)

// SessionGateway resolves the caller attached to a session id.
// An unknown session yields (nil, nil).
type SessionGateway interface {
	FindCaller(ctx context.Context, sessionID string) (*model.Caller, error)
}
