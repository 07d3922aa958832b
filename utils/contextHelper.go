package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/coopcredit_backend/appctx"
)

// Alias the shared context key type so existing code keeps working.
type contextKey = appctx.ContextKey

var (
	ContextKeyMemberId      = appctx.ContextKeyMemberId
	ContextKeyOfficerId     = appctx.ContextKeyOfficerId
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetMemberIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyMemberId)
}

func SetMemberIdInContext(ctx context.Context, memberId int) context.Context {
	return appctx.Set(ctx, ContextKeyMemberId, memberId)
}

func GetOfficerIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyOfficerId)
}

func SetOfficerIdInContext(ctx context.Context, officerId int) context.Context {
	return appctx.Set(ctx, ContextKeyOfficerId, officerId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}
