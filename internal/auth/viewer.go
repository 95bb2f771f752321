package auth

import (
	"context"

	"twitterclone/backend/internal/apperr"
)

type viewerKey struct{}

// Viewer is the identity resolved for one request. A zero UserID means anonymous; TokenErr is
// set when a credential was sent but could not be verified.
type Viewer struct {
	UserID   uint
	TokenErr error
}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFrom returns the viewer stored in ctx, or an anonymous viewer.
func ViewerFrom(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(ctx context.Context) uint {
	return ViewerFrom(ctx).UserID
}

// RequireUserID returns the authenticated user id or an UNAUTHENTICATED / INVALID_TOKEN error.
func RequireUserID(ctx context.Context) (uint, error) {
	v := ViewerFrom(ctx)
	if v.TokenErr != nil {
		return 0, apperr.InvalidToken(v.TokenErr)
	}
	if v.UserID == 0 {
		return 0, apperr.Unauthenticated()
	}
	return v.UserID, nil
}
