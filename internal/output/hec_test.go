package output

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingwatch/internal/config"
)

type capturedRequest struct {
	auth      string
	envelopes []map[string]any
}

type hecCapture struct {
	mu       sync.Mutex
	requests []capturedRequest
	failNth  int // 1-based request index to fail, 0 for none
}

func (c *hecCapture) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()

		req := capturedRequest{auth: r.Header.Get("Authorization")}

		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			var env map[string]any
			if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req.envelopes = append(req.envelopes, env)
		}

		c.requests = append(c.requests, req)

		if c.failNth == len(c.requests) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func newTestHECSink(t *testing.T, url string) *HECSink {
	t.Helper()

	cfg := config.HECConfig{
		URL:        url,
		Token:      "secret-token",
		Index:      "netmon",
		Sourcetype: "pingwatch",
		VerifyTLS:  true,
	}

	return NewHECSink(cfg, zerolog.Nop())
}

func TestHECBatching(t *testing.T) {
	capture := &hecCapture{}
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	sink := newTestHECSink(t, server.URL)

	// 250 records -> ceil(250/100) = 3 POSTs of 100, 100, 50.
	require.NoError(t, sink.Write(context.Background(), testRecords(250)))

	require.Len(t, capture.requests, 3)
	assert.Len(t, capture.requests[0].envelopes, 100)
	assert.Len(t, capture.requests[1].envelopes, 100)
	assert.Len(t, capture.requests[2].envelopes, 50)
}

func TestHECEnvelopeShape(t *testing.T) {
	capture := &hecCapture{}
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	sink := newTestHECSink(t, server.URL)
	require.NoError(t, sink.Write(context.Background(), testRecords(1)))

	require.Len(t, capture.requests, 1)
	assert.Equal(t, "Splunk secret-token", capture.requests[0].auth)

	env := capture.requests[0].envelopes[0]
	assert.Equal(t, "netmon", env["index"])
	assert.Equal(t, "pingwatch", env["sourcetype"])
	assert.NotEmpty(t, env["host"])
	assert.Greater(t, env["time"].(float64), 0.0)

	event, ok := env["event"].(map[string]any)
	require.True(t, ok, "envelope must nest the record under event")
	assert.Equal(t, "10.0.0.1", event["target_ip"])
	assert.Equal(t, "ping", event["record_type"])
}

func TestHECFailedBatchDoesNotStopOthers(t *testing.T) {
	capture := &hecCapture{failNth: 1}
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	sink := newTestHECSink(t, server.URL)

	err := sink.Write(context.Background(), testRecords(250))
	require.Error(t, err, "a failed batch is reported")
	assert.Contains(t, err.Error(), "1 of 3")

	// All three batches were still attempted.
	assert.Len(t, capture.requests, 3)
}

func TestHECInsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.HECConfig{URL: server.URL, Token: "t", VerifyTLS: false}
	sink := NewHECSink(cfg, zerolog.Nop())

	assert.NoError(t, sink.Write(context.Background(), testRecords(1)),
		"verify_tls=false must still deliver to a self-signed collector")

	strict := NewHECSink(config.HECConfig{URL: server.URL, Token: "t", VerifyTLS: true}, zerolog.Nop())
	assert.Error(t, strict.Write(context.Background(), testRecords(1)),
		"verify_tls=true must reject the self-signed certificate")
}
