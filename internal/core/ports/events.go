package ports

import (
	"context"
	"time"
)

// Lifecycle event kinds published by the core services.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
	EventOrderCreated   = "order.created"
	EventOrderCanceled  = "order.canceled"
)

// LifecycleEvent is a best-effort notification about a state change.
// Subject is the sharding key; events with the same subject are processed
// in order.
type LifecycleEvent struct {
	Kind    string
	Subject string
	UserID  uint
	OrderID uint
	Role    string
	At      time.Time
}

// EventSink consumes lifecycle events (notification, audit).
type EventSink interface {
	Process(ctx context.Context, event LifecycleEvent) error
}

// EventPublisher is the producer side used by the services. Publishing must
// never fail the originating request.
type EventPublisher interface {
	Publish(event LifecycleEvent)
}
