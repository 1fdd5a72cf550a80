package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed keys (payment callbacks) so a
// redelivered message is acknowledged without being applied twice
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget removes a key so the message can be retried after a failed apply
	Forget(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
