package domain

import (
	"context"
	"time"
)

// User is the owner of accounts and the maker of entries.
type User struct {
	ID        int64
	Username  string
	IsAdmin   bool
	CreatedAt time.Time
}

type callerKey struct{}

// WithCallerID stores the id of the user performing the request.
func WithCallerID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerIDFromContext returns the caller stored by WithCallerID.
func CallerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerKey{}).(int64)
	return id, ok && id > 0
}
