// Package probe issues ICMP echo requests against single endpoints and
// reduces the attempts into per-cycle statistics.
package probe

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pingwatch/internal/models"
)

// Prober probes one endpoint at a time: a fixed number of sequential echo
// requests, each bounded by its own timeout. A failed attempt never aborts
// the remaining attempts; every failure cause collapses to a failed outcome
// with sentinel latency and TTL.
type Prober struct {
	pinger   models.Pinger
	count    int
	timeout  time.Duration
	tagPings bool
	log      zerolog.Logger
}

// New creates a Prober. tagPings controls whether individual ping records
// carry the record_type field; summaries always do.
func New(pinger models.Pinger, count int, timeout time.Duration, tagPings bool, log zerolog.Logger) *Prober {
	return &Prober{
		pinger:   pinger,
		count:    count,
		timeout:  timeout,
		tagPings: tagPings,
		log:      log,
	}
}

// Probe runs the configured number of attempts against ep and returns the
// individual outcomes in ping_number order plus their summary.
func (p *Prober) Probe(ctx context.Context, ep models.Endpoint) ([]models.ProbeOutcome, models.CycleSummary) {
	outcomes := make([]models.ProbeOutcome, 0, p.count)

	for n := 1; n <= p.count; n++ {
		reply, err := p.pinger.Ping(ctx, ep.IP, p.timeout)

		outcome := models.ProbeOutcome{
			Timestamp:    time.Now(),
			TargetIP:     ep.IP,
			Hostname:     ep.Hostname,
			Group:        ep.Group,
			Description:  ep.Description,
			PingNumber:   n,
			PingsInCycle: p.count,
		}
		if p.tagPings {
			outcome.RecordType = models.RecordTypePing
		}

		if err != nil {
			outcome.Status = models.StatusFailed
			outcome.LatencyMS = models.NoValue
			outcome.TTL = models.NoValue
			p.log.Debug().Str("target", ep.IP).Int("ping_number", n).Err(err).Msg("Probe failed")
		} else {
			outcome.Status = models.StatusSuccess
			outcome.LatencyMS = int(reply.Latency.Milliseconds())
			outcome.TTL = reply.TTL
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, Reduce(outcomes)
}
