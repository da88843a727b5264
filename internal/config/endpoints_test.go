package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingwatch/internal/models"
)

func writeEndpoints(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "endpoints.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadEndpoints(t *testing.T) {
	csv := `ip,hostname,group,description
10.0.0.1,router,core,main router
10.0.0.2,switch,core
10.0.0.3,printer
`
	endpoints, err := LoadEndpoints(writeEndpoints(t, csv), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, endpoints, 3)

	assert.Equal(t, models.Endpoint{IP: "10.0.0.1", Hostname: "router", Group: "core", Description: "main router"}, endpoints[0])
	assert.Equal(t, models.Endpoint{IP: "10.0.0.2", Hostname: "switch", Group: "core"}, endpoints[1])
	assert.Equal(t, "default", endpoints[2].Group, "missing group defaults")
	assert.Empty(t, endpoints[2].Description)
}

func TestLoadEndpointsWithoutHeader(t *testing.T) {
	endpoints, err := LoadEndpoints(writeEndpoints(t, "10.0.0.1,router\n"), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "router", endpoints[0].Hostname)
}

func TestLoadEndpointsSkipsMalformedRows(t *testing.T) {
	csv := `ip,hostname
10.0.0.1,router
,nohost
10.0.0.3,
onlyip
10.0.0.4,ok
`
	endpoints, err := LoadEndpoints(writeEndpoints(t, csv), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, endpoints, 2, "rows missing ip or hostname are dropped")
	assert.Equal(t, "10.0.0.1", endpoints[0].IP)
	assert.Equal(t, "10.0.0.4", endpoints[1].IP)
}

func TestLoadEndpointsMissingFile(t *testing.T) {
	_, err := LoadEndpoints(filepath.Join(t.TempDir(), "none.csv"), zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadEndpointsEmptyFile(t *testing.T) {
	endpoints, err := LoadEndpoints(writeEndpoints(t, ""), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, endpoints, "caller treats an empty list as a fatal startup condition")
}
