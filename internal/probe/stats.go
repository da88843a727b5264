package probe

import (
	"math"
	"time"

	"pingwatch/internal/models"
)

// Reduce folds one endpoint's probe outcomes into a summary record. Pure
// computation; callers guarantee at least one outcome. Failed probes never
// contribute their sentinel values to the latency statistics.
func Reduce(outcomes []models.ProbeOutcome) models.CycleSummary {
	first := outcomes[0]

	summary := models.CycleSummary{
		Timestamp:    time.Now(),
		TargetIP:     first.TargetIP,
		Hostname:     first.Hostname,
		Group:        first.Group,
		Description:  first.Description,
		RecordType:   models.RecordTypeSummary,
		PingsSent:    len(outcomes),
		AvgLatencyMS: models.NoValue,
		MinLatencyMS: models.NoValue,
		MaxLatencyMS: models.NoValue,
	}

	latencySum := 0

	for _, o := range outcomes {
		if o.Status != models.StatusSuccess {
			summary.PingsFailed++
			continue
		}

		if summary.PingsSuccessful == 0 {
			summary.MinLatencyMS = o.LatencyMS
			summary.MaxLatencyMS = o.LatencyMS
		} else {
			if o.LatencyMS < summary.MinLatencyMS {
				summary.MinLatencyMS = o.LatencyMS
			}
			if o.LatencyMS > summary.MaxLatencyMS {
				summary.MaxLatencyMS = o.LatencyMS
			}
		}

		summary.PingsSuccessful++
		latencySum += o.LatencyMS
	}

	if summary.PingsSuccessful > 0 {
		summary.AvgLatencyMS = round2(float64(latencySum) / float64(summary.PingsSuccessful))
	}

	summary.PacketLossPct = round2(float64(summary.PingsFailed) / float64(summary.PingsSent) * 100)

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
