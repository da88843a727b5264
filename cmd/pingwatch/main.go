package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pingwatch/internal/config"
	"pingwatch/internal/logger"
	"pingwatch/internal/models"
	"pingwatch/internal/output"
	"pingwatch/internal/probe"
	"pingwatch/internal/scheduler"
	"pingwatch/internal/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		os.Stderr.WriteString("pingwatch: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("pingwatch: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	endpoints, err := config.LoadEndpoints(cfg.EndpointsFile, logger.WithComponent(log, "config"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load endpoints")
	}

	if len(endpoints) == 0 {
		log.Fatal().Str("file", cfg.EndpointsFile).Msg("No valid endpoints to probe")
	}

	var sinks []models.Sink

	if cfg.FileSinkActive() {
		sinks = append(sinks, output.NewFileSink(cfg.LogPath, cfg.LogRotationSizeMB, logger.WithComponent(log, "file")))
	}

	if cfg.HECSinkActive() {
		sinks = append(sinks, output.NewHECSink(cfg.HEC, logger.WithComponent(log, "hec")))
	}

	if cfg.ArchiveDB != "" {
		archive, err := store.New(cfg.ArchiveDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open archive database")
		}
		defer archive.Close()

		if err := archive.InitSchema(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize archive schema")
		}

		if err := archive.Prune(cfg.ArchiveRetentionDays); err != nil {
			log.Warn().Err(err).Msg("Failed to prune archive")
		}

		sinks = append(sinks, archive)
	}

	dispatcher := output.NewDispatcher(logger.WithComponent(log, "dispatch"), sinks...)

	prober := probe.New(
		probe.NewICMPPinger(cfg.PrivilegedICMP),
		cfg.PingsPerCycle,
		cfg.ProbeTimeout(),
		cfg.TagPingRecords,
		logger.WithComponent(log, "probe"),
	)

	sched := scheduler.New(
		endpoints,
		prober,
		dispatcher,
		cfg.CycleInterval(),
		cfg.MaxParallelProbes,
		cfg.RunOnce,
		logger.WithComponent(log, "scheduler"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("endpoints", len(endpoints)).
		Int("pings_per_cycle", cfg.PingsPerCycle).
		Str("output", cfg.OutputMode).
		Bool("run_once", cfg.RunOnce).
		Msg("Starting pingwatch")

	if err := sched.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Scheduler failed")
	}

	log.Info().Msg("Shutdown complete")
}
