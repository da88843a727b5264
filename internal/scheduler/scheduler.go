// Package scheduler drives repeated probing cycles: fan the endpoint list
// out across a bounded worker pool, join the results, hand the combined
// batch to the output dispatcher, then sleep out the remainder of the
// interval.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pingwatch/internal/models"
)

// Scheduler owns the run loop. It holds the only references to the endpoint
// list and the cycle parameters; record values flow through it by value and
// are discarded after dispatch.
type Scheduler struct {
	endpoints  []models.Endpoint
	prober     models.Prober
	dispatcher models.Dispatcher
	interval   time.Duration
	parallel   int
	runOnce    bool
	log        zerolog.Logger
}

// New creates a Scheduler.
func New(endpoints []models.Endpoint, prober models.Prober, dispatcher models.Dispatcher,
	interval time.Duration, parallel int, runOnce bool, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		endpoints:  endpoints,
		prober:     prober,
		dispatcher: dispatcher,
		interval:   interval,
		parallel:   parallel,
		runOnce:    runOnce,
		log:        log,
	}
}

// Run executes cycles until the context is canceled, or exactly one cycle
// when run-once is set. Cadence is interval-from-start: the sleep after a
// cycle is the interval minus the cycle's duration, floored at zero. A
// cycle that overruns the interval is followed immediately by the next one;
// cycles are never skipped.
func (s *Scheduler) Run(ctx context.Context) error {
	cycle := 0

	for {
		start := time.Now()
		cycle++

		s.runCycle(ctx)

		elapsed := time.Since(start)
		s.log.Info().Int("cycle", cycle).Dur("elapsed", elapsed).Msg("Cycle complete")

		if s.runOnce {
			return nil
		}

		sleep := s.interval - elapsed
		if sleep < 0 {
			sleep = 0
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// runCycle probes every endpoint with at most s.parallel in flight, then
// dispatches the combined batch. Endpoint failures are data, not errors;
// nothing here aborts a cycle.
func (s *Scheduler) runCycle(ctx context.Context) {
	// One slot per endpoint, so workers never contend on a shared slice
	// and per-endpoint record order is preserved regardless of completion
	// order.
	collected := make([][]models.Record, len(s.endpoints))

	jobs := make(chan int)

	var wg sync.WaitGroup

	workers := s.parallel
	if workers > len(s.endpoints) {
		workers = len(s.endpoints)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range jobs {
				ep := s.endpoints[idx]
				outcomes, summary := s.prober.Probe(ctx, ep)

				records := make([]models.Record, 0, len(outcomes)+1)
				for _, o := range outcomes {
					records = append(records, o)
				}
				records = append(records, summary)

				collected[idx] = records

				s.log.Debug().
					Str("target", ep.IP).
					Str("hostname", ep.Hostname).
					Float64("packet_loss_pct", summary.PacketLossPct).
					Msg("Endpoint probed")
			}
		}()
	}

	for idx := range s.endpoints {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	var batch []models.Record
	for _, records := range collected {
		batch = append(batch, records...)
	}

	s.dispatcher.Dispatch(ctx, batch)
}
