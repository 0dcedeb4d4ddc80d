// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are typically set by middleware (or by a script entrypoint) and
// consumed by services. Keeping this package free of net/http lets services
// import only what they need.
//
// Usage in services (read values):
//
//	actorID, ok := requestcontext.ActorID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithActorID(ctx, userID)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (pin the clock):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	actorIDKey     struct{}
	actorRoleKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// ActorID retrieves the acting user's id from the context. The second return
// is false when no authenticated actor is attached.
func ActorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorIDKey{}).(int64)
	return id, ok
}

// WithActorID injects the acting user's id into the context.
func WithActorID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, actorIDKey{}, id)
}

// ActorRole retrieves the acting user's role name, or "" when absent.
func ActorRole(ctx context.Context) string {
	role, _ := ctx.Value(actorRoleKey{}).(string)
	return role
}

// WithActorRole injects the acting user's role name into the context.
func WithActorRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, actorRoleKey{}, role)
}

// RequestID retrieves the request correlation id, or "" when absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID injects a request correlation id into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Now returns the request time if one was attached, falling back to the wall
// clock. Every date rule (future-date checks, audit timestamps, maintenance
// scheduling windows) reads the clock through here so tests can pin it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request clock in the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
