package store

import (
	"database/sql"
	"time"
)

// EndpointStats is a per-endpoint aggregate over a report window.
type EndpointStats struct {
	TargetIP      string
	Hostname      string
	Group         string
	PingsSent     int
	PingsOK       int
	PacketLossPct float64
	AvgLatencyMS  float64
	MinLatencyMS  float64
	MaxLatencyMS  float64
}

// SeriesPoint is one cycle summary sample for charting.
type SeriesPoint struct {
	Timestamp     time.Time
	AvgLatencyMS  float64
	PacketLossPct float64
}

// EndpointStats aggregates the ping records of the last N hours per endpoint.
func (s *Store) EndpointStats(hours int) ([]EndpointStats, error) {
	query := `
        SELECT
            target_ip,
            hostname,
            target_group,
            COUNT(*) as pings_sent,
            SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END) as pings_ok,
            AVG(CASE WHEN status = 'success' THEN latency_ms ELSE NULL END) as avg_latency,
            MIN(CASE WHEN status = 'success' THEN latency_ms ELSE NULL END) as min_latency,
            MAX(CASE WHEN status = 'success' THEN latency_ms ELSE NULL END) as max_latency
        FROM ping_records
        WHERE timestamp > datetime('now', '-' || ? || ' hours')
        GROUP BY target_ip, hostname, target_group
        ORDER BY target_group, hostname
    `

	rows, err := s.db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []EndpointStats

	for rows.Next() {
		var st EndpointStats

		var avg, minL, maxL sql.NullFloat64

		if err := rows.Scan(&st.TargetIP, &st.Hostname, &st.Group, &st.PingsSent, &st.PingsOK, &avg, &minL, &maxL); err != nil {
			continue
		}

		if st.PingsSent > 0 {
			st.PacketLossPct = float64(st.PingsSent-st.PingsOK) / float64(st.PingsSent) * 100
		}

		if avg.Valid {
			st.AvgLatencyMS = avg.Float64
			st.MinLatencyMS = minL.Float64
			st.MaxLatencyMS = maxL.Float64
		}

		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// LatencySeries returns each endpoint's cycle summaries over the last N
// hours, keyed by "hostname (ip)".
func (s *Store) LatencySeries(hours int) (map[string][]SeriesPoint, error) {
	query := `
        SELECT timestamp, target_ip, hostname, avg_latency_ms, packet_loss_pct
        FROM cycle_summaries
        WHERE timestamp > datetime('now', '-' || ? || ' hours')
        ORDER BY timestamp
    `

	rows, err := s.db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := make(map[string][]SeriesPoint)

	for rows.Next() {
		var (
			ts           time.Time
			ip, hostname string
			point        SeriesPoint
		)

		if err := rows.Scan(&ts, &ip, &hostname, &point.AvgLatencyMS, &point.PacketLossPct); err != nil {
			continue
		}

		point.Timestamp = ts
		key := hostname + " (" + ip + ")"
		series[key] = append(series[key], point)
	}

	return series, rows.Err()
}
