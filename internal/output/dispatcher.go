// Package output delivers cycle records to the configured sinks: a rotating
// append-only log file, a Splunk-style HTTP Event Collector, and optionally
// a local SQLite archive.
package output

import (
	"context"

	"github.com/rs/zerolog"

	"pingwatch/internal/models"
)

// Dispatcher fans a cycle's record batch out to every configured sink.
// Sinks are independent: a failure in one is logged and does not prevent
// delivery to the others.
type Dispatcher struct {
	sinks []models.Sink
	log   zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(log zerolog.Logger, sinks ...models.Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, log: log}
}

// Dispatch writes records to each sink in turn. Delivery is best-effort;
// errors are contained here.
func (d *Dispatcher) Dispatch(ctx context.Context, records []models.Record) {
	if len(records) == 0 {
		return
	}

	for _, sink := range d.sinks {
		if err := sink.Write(ctx, records); err != nil {
			d.log.Warn().Str("sink", sink.Name()).Err(err).Msg("Sink delivery failed")
		}
	}
}
