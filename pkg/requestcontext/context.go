// Package requestcontext carries the clock reading and request id of one
// action through a context. The wizard reads "today" from here for age and
// expiry checks; the progress service stamps both in middleware.
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	keyRequestID key = iota
	keyNow
)

// RequestID is the id assigned by the progress service, or "" outside a
// request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// Now returns the pinned time for ctx, or the wall clock when none was set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(keyNow).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins Now for everything downstream of ctx.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyNow, t)
}
