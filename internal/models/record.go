package models

import "time"

// Record types carried on every emitted line. Individual ping events may
// omit the tag for older consumers; summaries always carry it.
const (
	RecordTypePing    = "ping"
	RecordTypeSummary = "summary"
)

// Probe status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// NoValue is the sentinel recorded for latency and TTL when a probe fails.
// Kept as -1 (rather than omitting the field) for compatibility with
// existing log consumers.
const NoValue = -1

// Endpoint is one target to probe. Immutable for the lifetime of a run.
type Endpoint struct {
	IP          string `json:"ip"`
	Hostname    string `json:"hostname"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// ProbeOutcome is the result of a single ICMP echo attempt.
type ProbeOutcome struct {
	Timestamp    time.Time `json:"timestamp"`
	TargetIP     string    `json:"target_ip"`
	Hostname     string    `json:"hostname"`
	Group        string    `json:"group"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	LatencyMS    int       `json:"latency_ms"`
	TTL          int       `json:"ttl"`
	PingNumber   int       `json:"ping_number"`
	PingsInCycle int       `json:"pings_in_cycle"`
	RecordType   string    `json:"record_type,omitempty"`
}

// When implements Record.
func (o ProbeOutcome) When() time.Time { return o.Timestamp }

// CycleSummary aggregates one endpoint's probes for one cycle.
// PingsSent is always PingsSuccessful + PingsFailed. When no probe
// succeeded, the latency fields are NoValue and PacketLossPct is 100.
type CycleSummary struct {
	Timestamp       time.Time `json:"timestamp"`
	TargetIP        string    `json:"target_ip"`
	Hostname        string    `json:"hostname"`
	Group           string    `json:"group"`
	Description     string    `json:"description"`
	RecordType      string    `json:"record_type"`
	PingsSent       int       `json:"pings_sent"`
	PingsSuccessful int       `json:"pings_successful"`
	PingsFailed     int       `json:"pings_failed"`
	PacketLossPct   float64   `json:"packet_loss_pct"`
	AvgLatencyMS    float64   `json:"avg_latency_ms"`
	MinLatencyMS    int       `json:"min_latency_ms"`
	MaxLatencyMS    int       `json:"max_latency_ms"`
}

// When implements Record.
func (s CycleSummary) When() time.Time { return s.Timestamp }
