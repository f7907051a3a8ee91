package middleware

import (
	"context"

	"marketpulse/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

// RoleFromContext returns the authenticated role, if any.
func RoleFromContext(ctx context.Context) (enums.UserRole, bool) {
	value, ok := ctx.Value(ctxRole).(string)
	if !ok {
		return "", false
	}
	role, err := enums.ParseUserRole(value)
	if err != nil {
		return "", false
	}
	return role, true
}
