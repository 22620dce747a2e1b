package auth

import (
	"context"

	apperrors "memories-backend/pkg/errors"
)

// UserContext carries the verified identity of the caller through a request.
// It is set exactly once by the authentication middleware; no operation ever
// falls back to an anonymous or shared identity.
type UserContext struct {
	UserID string
}

type contextKey string

const userContextKey contextKey = "user_context"

// SetUserInContext adds the user context to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context from the request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	return user, nil
}
