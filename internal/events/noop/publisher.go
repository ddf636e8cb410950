// Package noop provides an event publisher that discards everything, for
// tests and broker-less runs.
package noop

import (
	"context"

	"github.com/accora-hq/ledger-service/internal/interfaces"
)

// Publisher discards every event.
type Publisher struct{}

// NewPublisher returns a discarding publisher.
func NewPublisher() *Publisher { return &Publisher{} }

// Publish does nothing.
func (*Publisher) Publish(context.Context, any) error { return nil }

var _ interfaces.EventPublisher = (*Publisher)(nil)
