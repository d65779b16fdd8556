package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
)

type RedisSessionGateway struct {
	client    *redis.Client
	keyPrefix string
}

var _ SessionGateway = (*RedisSessionGateway)(nil)

func NewRedisSessionGateway(client *redis.Client, keyPrefix string) *RedisSessionGateway {
	return &RedisSessionGateway{client: client, keyPrefix: keyPrefix}
}

func (gateway *RedisSessionGateway) FindCaller(ctx context.Context, sessionID string) (*model.Caller, error) {
	if sessionID == "" {
		return nil, nil
	}

	data, found, err := gateway.client.GetBytes(ctx, gateway.keyPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}

	return parseSession(sessionID, data)
}

type sessionPayload struct {
	UserID json.RawMessage `json:"userId"`
	Role   string          `json:"role"`
}

// parseSession reads the session document. userId may be stored as a string
// or a number; a session without a user is anonymous. A missing role means user.
func parseSession(sessionID string, data []byte) (*model.Caller, error) {
	var payload sessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.New(msg.GetMessage("session.error.invalid", sessionID, err))
	}

	userID, err := userIDString(payload.UserID)
	if err != nil {
		return nil, errors.New(msg.GetMessage("session.error.invalid", sessionID, err))
	}
	if userID == "" {
		return nil, nil
	}

	role := model.Role(payload.Role)
	if role == "" {
		role = model.RoleUser
	}
	return &model.Caller{UserID: userID, Role: role}, nil
}

func userIDString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", errors.New("userId must be a string or a number")
	}
	return number.String(), nil
}
