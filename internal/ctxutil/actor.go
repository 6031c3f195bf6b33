// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// Actor is the messaging-platform user an operation is performed for.
type Actor struct {
	ID   int64
	Name string
}

// WithActor returns a context with the acting user embedded.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the acting user from context. ok is false if not set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ActorKey{}).(Actor)
	return actor, ok
}
