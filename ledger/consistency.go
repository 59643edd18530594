package ledger

import "context"

type replicaKey struct{}

// WithEventualConsistency marks ctx as tolerating stale reads, so a Reader may answer from a
// replica. Listing and reporting views use it; commands never do, they read inside their transaction.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, replicaKey{}, true)
}

// ReplicaAllowed reports whether ctx was marked with WithEventualConsistency.
func ReplicaAllowed(ctx context.Context) bool {
	allowed, _ := ctx.Value(replicaKey{}).(bool)
	return allowed
}
