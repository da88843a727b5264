// pingwatch-report renders offline charts and a text summary from a
// pingwatch SQLite archive.
package main

import (
	"flag"
	"os"

	"pingwatch/internal/logger"
	"pingwatch/internal/report"
	"pingwatch/internal/store"
)

func main() {
	var (
		dbPath = flag.String("db", "pingwatch.db", "Archive database path")
		outDir = flag.String("out", "reports", "Output directory")
		hours  = flag.Int("hours", 24, "Report window in hours")
	)
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		os.Stderr.WriteString("pingwatch-report: " + err.Error() + "\n")
		os.Exit(1)
	}

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatal().Str("db", *dbPath).Err(err).Msg("Archive database not found")
	}

	archive, err := store.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open archive database")
	}
	defer archive.Close()

	gen := report.NewGenerator(archive, log)

	reportDir, err := gen.Generate(*outDir, *hours)
	if err != nil {
		log.Fatal().Err(err).Msg("Report generation failed")
	}

	log.Info().Str("dir", reportDir).Msg("Report generated")
}
