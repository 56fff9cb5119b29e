package session

import (
	"context"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

type contextKey struct{}

// WithState attaches a request's session state to ctx
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, contextKey{}, st)
}

// StateFrom returns the session state attached to ctx, if any
func StateFrom(ctx context.Context) (*State, bool) {
	st, ok := ctx.Value(contextKey{}).(*State)
	return st, ok
}

// FromContext returns the request's session. Outside the session middleware
// it returns a throwaway session so callers never see nil.
func FromContext(ctx context.Context) *entities.Session {
	if st, ok := StateFrom(ctx); ok {
		return st.Session
	}
	return &entities.Session{}
}

// Flash queues a message on the request's session
func Flash(ctx context.Context, kind, message string) {
	FromContext(ctx).AddFlash(kind, message)
}
