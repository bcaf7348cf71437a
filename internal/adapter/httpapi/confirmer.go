package httpapi

import "context"

type confirmationCtxKey struct{}

// withConfirmation records whether the client already answered the
// destructive-action prompt for this request.
func withConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationCtxKey{}, confirmed)
}

// RequestConfirmer answers confirmation prompts from the request
// context. Over HTTP the user's "OK" arrives as confirmed=true on a
// follow-up request rather than a blocking dialog.
type RequestConfirmer struct{}

// Confirm reports whether this request carries an affirmative answer.
func (RequestConfirmer) Confirm(ctx context.Context, _ string) bool {
	confirmed, _ := ctx.Value(confirmationCtxKey{}).(bool)
	return confirmed
}
