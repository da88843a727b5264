package models

import (
	"context"
	"time"
)

// Record is any value the output dispatcher can deliver: a ProbeOutcome or
// a CycleSummary. Sinks serialize the concrete value; When exposes the
// record's own timestamp for delivery metadata.
type Record interface {
	When() time.Time
}

// PingReply is the observed result of one successful ICMP echo.
type PingReply struct {
	Latency time.Duration
	TTL     int
}

// Pinger issues a single ICMP echo request. Implementations must honor the
// timeout and return an error for any failure cause (timeout, unreachable,
// resolution, permission).
type Pinger interface {
	Ping(ctx context.Context, addr string, timeout time.Duration) (PingReply, error)
}

// Prober probes one endpoint and reduces the attempts into a summary.
type Prober interface {
	Probe(ctx context.Context, ep Endpoint) ([]ProbeOutcome, CycleSummary)
}

// Sink is a delivery target for a cycle's records.
type Sink interface {
	Name() string
	Write(ctx context.Context, records []Record) error
}

// Dispatcher hands a cycle's combined record batch to the configured sinks.
type Dispatcher interface {
	Dispatch(ctx context.Context, records []Record)
}
