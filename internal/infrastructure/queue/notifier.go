package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mateosvilasboas/infog2-crud/internal/api/metrics"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// LogNotifier is the default event sink: it records lifecycle events in the
// structured log and exposes them as Prometheus counters. A mail or webhook
// notifier would implement the same interface.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Process(_ context.Context, event ports.LifecycleEvent) error {
	metrics.LifecycleEventsTotal.WithLabelValues(event.Kind).Inc()

	n.log.Info().
		Str("kind", event.Kind).
		Str("subject", event.Subject).
		Uint("user_id", event.UserID).
		Uint("order_id", event.OrderID).
		Time("at", event.At).
		Msg("lifecycle event")

	return nil
}

var _ ports.EventSink = (*LogNotifier)(nil)
