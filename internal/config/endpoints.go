package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"pingwatch/internal/models"
)

// DefaultGroup is assigned to endpoints whose CSV row leaves the group
// column empty.
const DefaultGroup = "default"

// LoadEndpoints reads the endpoint list CSV. Expected columns are
// ip,hostname,group,description; group and description are optional and a
// leading header row is tolerated. Rows without both an IP and a hostname
// are skipped with a warning.
func LoadEndpoints(path string, log zerolog.Logger) ([]models.Endpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open endpoints file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoints file: %w", err)
	}

	var endpoints []models.Endpoint

	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}

		ep, ok := endpointFromRow(row)
		if !ok {
			log.Warn().Int("line", i+1).Strs("row", row).Msg("Skipping malformed endpoint row")
			continue
		}

		endpoints = append(endpoints, ep)
	}

	return endpoints, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "ip")
}

func endpointFromRow(row []string) (models.Endpoint, bool) {
	if len(row) < 2 {
		return models.Endpoint{}, false
	}

	ep := models.Endpoint{
		IP:       strings.TrimSpace(row[0]),
		Hostname: strings.TrimSpace(row[1]),
		Group:    DefaultGroup,
	}
	if ep.IP == "" || ep.Hostname == "" {
		return models.Endpoint{}, false
	}

	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		ep.Group = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		ep.Description = strings.TrimSpace(row[3])
	}

	return ep, true
}
