package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxAccountID contextKey = "account_id"
	ctxRole      contextKey = "actor_role"
	ctxSuperuser contextKey = "is_superuser"
	ctxProfileID contextKey = "profile_id"
)

func AccountIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxAccountID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func IsSuperuserFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(ctxSuperuser).(bool); ok {
		return v
	}
	return false
}

// ProfileIDFromContext returns the role profile id seeded by the active
// profile gate: the customer profile for customers, the vendor profile for
// vendors. Admins have no profile and get uuid.Nil.
func ProfileIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxProfileID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithIdentity seeds the context the way Auth does, used by handler tests.
func WithIdentity(ctx context.Context, accountID uuid.UUID, role string, superuser bool) context.Context {
	ctx = context.WithValue(ctx, ctxAccountID, accountID)
	ctx = context.WithValue(ctx, ctxRole, role)
	return context.WithValue(ctx, ctxSuperuser, superuser)
}

// WithProfileID seeds the role profile id the way ActiveProfileGate does.
func WithProfileID(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxProfileID, profileID)
}
