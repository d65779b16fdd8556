package model

import (
	"context"
	"slices"
)

// Role is the authorization role attached to a session
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Caller is the identity resolved from the request session
type Caller struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

type callerContextKey struct{}

// WithCaller returns a copy of ctx carrying caller
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the caller stored in ctx. The second value is false
// when there is no caller or its user id is empty.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	if !ok || caller.UserID == "" {
		return Caller{}, false
	}
	return caller, true
}

// Authorize reports whether role satisfies one of the required roles.
// An empty role is never authorized; an empty required list accepts any role.
func Authorize(role Role, required ...Role) bool {
	if role == "" {
		return false
	}
	if len(required) == 0 {
		return true
	}
	return slices.Contains(required, role)
}
