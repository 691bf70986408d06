package ctxutil

import (
	"context"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	reviewerKey  ctxKey = "reviewer"
	requestIDKey ctxKey = "request_id"
)

// WithIdentity stores the caller identity and its reviewer flag in the context.
func WithIdentity(ctx context.Context, identity string, reviewer bool) context.Context {
	ctx = context.WithValue(ctx, identityKey, identity)
	return context.WithValue(ctx, reviewerKey, reviewer)
}

// IdentityFromCtx extracts the caller identity from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func IdentityFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// IsReviewerCtx reports whether the caller in ctx may review proposals.
func IsReviewerCtx(ctx context.Context) bool {
	if _, ok := IdentityFromCtx(ctx); !ok {
		return false
	}
	reviewer, _ := ctx.Value(reviewerKey).(bool)
	return reviewer
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
