package output

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"pingwatch/internal/config"
	"pingwatch/internal/models"
)

// Each POST carries at most this many envelopes to bound request size.
const hecBatchSize = 100

const hecRequestTimeout = 30 * time.Second

// hecEnvelope is the HTTP Event Collector wrapper around one record. Time
// is the record's own timestamp in epoch seconds.
type hecEnvelope struct {
	Time       float64       `json:"time"`
	Host       string        `json:"host"`
	Index      string        `json:"index,omitempty"`
	Sourcetype string        `json:"sourcetype,omitempty"`
	Event      models.Record `json:"event"`
}

// HECSink posts batched records to an HTTP Event Collector. Delivery is
// best-effort: a failed batch is dropped, never retried in a later cycle.
type HECSink struct {
	client     *http.Client
	url        string
	token      string
	index      string
	sourcetype string
	host       string
	batchSize  int
	log        zerolog.Logger
}

// NewHECSink creates the HTTP sink. When cfg.VerifyTLS is false the sender
// still delivers, skipping certificate verification (explicit opt-in for
// collectors with self-signed certs).
func NewHECSink(cfg config.HECConfig, log zerolog.Logger) *HECSink {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}, //nolint:gosec
	}

	host, err := os.Hostname()
	if err != nil {
		host = "pingwatch"
	}

	return &HECSink{
		client:     &http.Client{Transport: transport, Timeout: hecRequestTimeout},
		url:        cfg.URL,
		token:      cfg.Token,
		index:      cfg.Index,
		sourcetype: cfg.Sourcetype,
		host:       host,
		batchSize:  hecBatchSize,
		log:        log,
	}
}

// Name implements models.Sink.
func (s *HECSink) Name() string { return "hec" }

// Write posts the records in batches. A failed batch does not stop the
// remaining batches from being attempted; the error summarizes how many
// batches were lost.
func (s *HECSink) Write(ctx context.Context, records []models.Record) error {
	var failed, total int

	var firstErr error

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		total++

		if err := s.postBatch(ctx, records[start:end]); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			s.log.Warn().Int("batch_size", end-start).Err(err).Msg("HEC batch delivery failed")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d HEC batches failed: %w", failed, total, firstErr)
	}

	return nil
}

// postBatch sends one batch as newline-delimited envelope objects.
func (s *HECSink) postBatch(ctx context.Context, records []models.Record) error {
	var body bytes.Buffer

	enc := json.NewEncoder(&body)
	for _, rec := range records {
		env := hecEnvelope{
			Time:       float64(rec.When().UnixNano()) / float64(time.Second),
			Host:       s.host,
			Index:      s.index,
			Sourcetype: s.sourcetype,
			Event:      rec,
		}
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode HEC envelope: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return fmt.Errorf("failed to build HEC request: %w", err)
	}

	req.Header.Set("Authorization", "Splunk "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("HEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HEC returned status %d", resp.StatusCode)
	}

	return nil
}
