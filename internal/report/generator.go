// Package report renders offline charts and a text summary from the
// SQLite archive.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pingwatch/internal/store"
)

// Generator creates static report artifacts from archived probe history.
type Generator struct {
	store *store.Store
	log   zerolog.Logger
}

// NewGenerator creates a report generator over an opened archive.
func NewGenerator(st *store.Store, log zerolog.Logger) *Generator {
	return &Generator{store: st, log: log}
}

// Generate writes charts and a text summary covering the last N hours into
// a timestamped directory under outputDir. Individual artifact failures are
// logged; the rest of the report is still produced.
func (g *Generator) Generate(outputDir string, hours int) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("pingwatch_report_%s", timestamp))

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateLatencyChart(reportDir, hours); err != nil {
		g.log.Warn().Err(err).Msg("Failed to generate latency chart")
	}

	if err := g.generateAvailabilityChart(reportDir, hours); err != nil {
		g.log.Warn().Err(err).Msg("Failed to generate availability chart")
	}

	if err := g.generateTextSummary(reportDir, hours); err != nil {
		g.log.Warn().Err(err).Msg("Failed to generate text summary")
	}

	return reportDir, nil
}

// sanitizeFilename makes an endpoint key safe for use in a file name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "-", ":", "-")
	return replacer.Replace(name)
}
