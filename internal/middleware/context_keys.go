package middleware

import "context"

// ContextKey is a private key type for request-scoped auth values, to
// avoid collisions with other packages' context keys.
type ContextKey string

const (
	// UserEmailCtxKey holds the authenticated user's email.
	UserEmailCtxKey = ContextKey("user_email")

	// UserNameCtxKey holds the authenticated user's display name.
	UserNameCtxKey = ContextKey("user_name")
)

// UserEmailFromContext extracts the authenticated email set by JWTAuth.
func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailCtxKey).(string)
	return email, ok && email != ""
}

// UserNameFromContext extracts the authenticated display name set by JWTAuth.
func UserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameCtxKey).(string)
	return name, ok && name != ""
}
