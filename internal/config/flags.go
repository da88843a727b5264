package config

import "flag"

// ParseFlags builds the run configuration: defaults, then the optional YAML
// config file, then any flags given explicitly on the command line.
func ParseFlags() (Config, error) {
	def := Default()

	var (
		configFile = flag.String("config", "", "Optional YAML config file")
		endpoints  = flag.String("endpoints", def.EndpointsFile, "Endpoint list CSV (ip,hostname,group,description)")
		pings      = flag.Int("pings", def.PingsPerCycle, "ICMP echoes per endpoint per cycle")
		interval   = flag.Int("interval", def.CycleIntervalSeconds, "Seconds between cycle starts")
		timeout    = flag.Int("timeout", def.ProbeTimeoutSeconds, "Per-probe timeout in seconds")
		parallel   = flag.Int("parallel", def.MaxParallelProbes, "Max endpoints probed concurrently")
		privileged = flag.Bool("privileged", def.PrivilegedICMP, "Use raw ICMP sockets (requires root or CAP_NET_RAW)")
		output     = flag.String("output", def.OutputMode, "Output mode: file, hec or both")
		logPath    = flag.String("log-path", def.LogPath, "Rotating log file path")
		rotateMB   = flag.Int("rotate-mb", def.LogRotationSizeMB, "Rotate the log file at this size in MB")
		archiveDB  = flag.String("archive-db", def.ArchiveDB, "Optional SQLite archive path")
		hecURL     = flag.String("hec-url", def.HEC.URL, "HEC collector URL")
		hecToken   = flag.String("hec-token", def.HEC.Token, "HEC auth token")
		once       = flag.Bool("once", false, "Run a single cycle and exit")
		logLevel   = flag.String("log-level", def.Log.Level, "Log level (trace, debug, info, warn, error)")
		debug      = flag.Bool("debug", def.Log.Debug, "Enable debug logging")
	)
	flag.Parse()

	cfg := def
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			return Config{}, err
		}
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoints":
			cfg.EndpointsFile = *endpoints
		case "pings":
			cfg.PingsPerCycle = *pings
		case "interval":
			cfg.CycleIntervalSeconds = *interval
		case "timeout":
			cfg.ProbeTimeoutSeconds = *timeout
		case "parallel":
			cfg.MaxParallelProbes = *parallel
		case "privileged":
			cfg.PrivilegedICMP = *privileged
		case "output":
			cfg.OutputMode = *output
		case "log-path":
			cfg.LogPath = *logPath
		case "rotate-mb":
			cfg.LogRotationSizeMB = *rotateMB
		case "archive-db":
			cfg.ArchiveDB = *archiveDB
		case "hec-url":
			cfg.HEC.URL = *hecURL
		case "hec-token":
			cfg.HEC.Token = *hecToken
		case "log-level":
			cfg.Log.Level = *logLevel
		case "debug":
			cfg.Log.Debug = *debug
		}
	})

	cfg.RunOnce = *once

	if cfg.HECSinkActive() {
		cfg.HEC.Enabled = true
	}

	return cfg, nil
}
