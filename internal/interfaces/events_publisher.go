package interfaces

import "context"

// EventPublisher delivers domain events to interested consumers. Publishing
// is best-effort from the ledger's point of view: a failed publish never
// invalidates a committed entry.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}
