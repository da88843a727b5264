package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingwatch/internal/models"
)

// fakePinger replays a scripted sequence of replies. A nil error entry
// yields the reply; otherwise the attempt fails.
type fakePinger struct {
	replies []models.PingReply
	errs    []error
	calls   int
}

func (f *fakePinger) Ping(_ context.Context, _ string, _ time.Duration) (models.PingReply, error) {
	i := f.calls
	f.calls++

	if i >= len(f.replies) {
		return models.PingReply{}, errors.New("unscripted call")
	}

	return f.replies[i], f.errs[i]
}

func steadyPinger(count int, latency time.Duration, ttl int) *fakePinger {
	f := &fakePinger{}
	for i := 0; i < count; i++ {
		f.replies = append(f.replies, models.PingReply{Latency: latency, TTL: ttl})
		f.errs = append(f.errs, nil)
	}

	return f
}

func TestProbeAllSuccess(t *testing.T) {
	pinger := steadyPinger(4, 15*time.Millisecond, 64)
	prober := New(pinger, 4, time.Second, true, zerolog.Nop())

	ep := models.Endpoint{IP: "10.0.0.1", Hostname: "a", Group: "default"}
	outcomes, summary := prober.Probe(context.Background(), ep)

	require.Len(t, outcomes, 4)

	for i, o := range outcomes {
		assert.Equal(t, i+1, o.PingNumber)
		assert.Equal(t, 4, o.PingsInCycle)
		assert.Equal(t, models.StatusSuccess, o.Status)
		assert.Equal(t, 15, o.LatencyMS)
		assert.Equal(t, 64, o.TTL)
		assert.Equal(t, models.RecordTypePing, o.RecordType)
		assert.Equal(t, "10.0.0.1", o.TargetIP)
		assert.Equal(t, "a", o.Hostname)
	}

	assert.Equal(t, 4, summary.PingsSent)
	assert.Equal(t, 4, summary.PingsSuccessful)
	assert.Equal(t, 0, summary.PingsFailed)
	assert.Equal(t, 0.0, summary.PacketLossPct)
	assert.Equal(t, 15.0, summary.AvgLatencyMS)
}

func TestProbeFailureCollapsesToSentinels(t *testing.T) {
	pinger := &fakePinger{
		replies: []models.PingReply{{Latency: 10 * time.Millisecond, TTL: 60}, {}, {Latency: 20 * time.Millisecond, TTL: 60}},
		errs:    []error{nil, errors.New("destination unreachable"), nil},
	}
	prober := New(pinger, 3, time.Second, true, zerolog.Nop())

	outcomes, summary := prober.Probe(context.Background(), models.Endpoint{IP: "10.0.0.2", Hostname: "b"})

	require.Len(t, outcomes, 3, "a failed probe must not stop the remaining attempts")

	failed := outcomes[1]
	assert.Equal(t, models.StatusFailed, failed.Status)
	assert.Equal(t, models.NoValue, failed.LatencyMS)
	assert.Equal(t, models.NoValue, failed.TTL)
	assert.Equal(t, 2, failed.PingNumber)

	assert.Equal(t, 2, summary.PingsSuccessful)
	assert.Equal(t, 1, summary.PingsFailed)
	assert.Equal(t, 33.33, summary.PacketLossPct)
}

func TestProbeRecordTypeOmitted(t *testing.T) {
	pinger := steadyPinger(2, time.Millisecond, 64)
	prober := New(pinger, 2, time.Second, false, zerolog.Nop())

	outcomes, summary := prober.Probe(context.Background(), models.Endpoint{IP: "10.0.0.1", Hostname: "a"})

	for _, o := range outcomes {
		assert.Empty(t, o.RecordType, "untagged ping records must omit record_type")
	}

	assert.Equal(t, models.RecordTypeSummary, summary.RecordType, "summaries always carry record_type")
}

func TestProbeSequenceIsRepeatable(t *testing.T) {
	ep := models.Endpoint{IP: "10.0.0.1", Hostname: "a"}

	for run := 0; run < 2; run++ {
		prober := New(steadyPinger(5, 10*time.Millisecond, 64), 5, time.Second, true, zerolog.Nop())
		outcomes, _ := prober.Probe(context.Background(), ep)

		require.Len(t, outcomes, 5)

		for i, o := range outcomes {
			require.Equal(t, i+1, o.PingNumber, "ping_number must be strictly increasing from 1")
		}
	}
}
