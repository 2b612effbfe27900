package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/check"
	"github.com/fwojciec/vanity/fs"
	vanityhttp "github.com/fwojciec/vanity/http"
	"github.com/fwojciec/vanity/prometheus"
	"github.com/fwojciec/vanity/sqlite"
	vslog "github.com/fwojciec/vanity/slog"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
		return err
	}

	logger, logFile, err := newLogger(deps.Stdout, cfg.LogFile, c.Verbose)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	resolver := deps.Resolver
	if resolver == nil {
		if resolver, err = vanityhttp.NewResolver(cfg.Mode, cfg.Credential); err != nil {
			return err
		}
	}

	var store vanity.ResultStore
	if deps.DB != nil {
		store = sqlite.NewResultStore(deps.DB, cfg.Mode)
	} else {
		store = fs.NewResultStore(c.OutputDir, cfg.Mode)
	}

	words, err := fs.NewWordFile(filepath.Join(c.WordlistDir, c.Wordlist)).Words(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
		return fmt.Errorf("load wordlist: %w", err)
	}

	runner := &check.Runner{
		Config:   cfg,
		Resolver: vslog.NewLoggingResolver(resolver, logger),
		Store:    vslog.NewLoggingStore(store, logger),
		SkipList: &fs.WordFile{Path: fs.SkipListPath(c.ConfigDir, cfg.Mode), Optional: true},
		Runs:     deps.Runs,
		Logger:   logger,
		Progress: func(e check.ProgressEvent) {
			if e.Type == check.ProgressCompleted {
				logger.Debug("progress", "completed", e.Completed, "total", e.Total)
			}
		},
	}

	var recorder *prometheus.Recorder
	if c.MetricsFile != "" {
		recorder = prometheus.NewRecorder()
		runner.Recorder = recorder
	}
	if cfg.RequestsPerSecond > 0 {
		runner.Limiter = check.NewPacer(cfg.RequestsPerSecond)
	}

	summary, err := runner.Run(deps.Ctx, words)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
		return err
	}

	if recorder != nil {
		recorder.ObserveRun(summary.Run)
		if err := recorder.WriteTextfile(c.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", "path", c.MetricsFile, "err", err)
		}
	}

	printSummary(deps.Stdout, summary)
	return nil
}

// config resolves the run configuration: file values, then flag and
// environment overrides.
func (c *CheckCmd) config() (vanity.Config, error) {
	path := c.Config
	if path == "" {
		path = fs.ConfigPath(c.ConfigDir)
	}

	cfg, err := fs.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	mode, err := vanity.ParseMode(c.Mode)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode

	if c.Credential != "" {
		cfg.Credential = c.Credential
	}
	if c.Concurrency > 0 {
		cfg.MaxConcurrent = c.Concurrency
	}
	if c.RPS > 0 {
		cfg.RequestsPerSecond = c.RPS
	}
	if cfg.LogFile == vanity.DefaultLogFile {
		cfg.LogFile = filepath.Join(c.OutputDir, "activity.log")
	}

	return cfg, cfg.Validate()
}

// newLogger returns a text logger writing to both stdout and the append-only
// activity log.
func newLogger(stdout io.Writer, path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(io.MultiWriter(stdout, f), &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}

func printSummary(w io.Writer, s *check.Summary) {
	fmt.Fprintf(w, "Run %s (%s)\n", s.RunID, s.Mode)
	fmt.Fprintf(w, "Available: %d\n", s.Available)
	fmt.Fprintf(w, "Unavailable: %d\n", s.Unavailable)

	outcomes := make([]string, 0, len(s.Outcomes))
	for o := range s.Outcomes {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %-26s %d\n", o, s.Outcomes[vanity.Outcome(o)])
	}

	if len(s.RateLimited) > 0 {
		fmt.Fprintf(w, "Rate limited: %d\n", len(s.RateLimited))
	}
	fmt.Fprintf(w, "Digest: %s\n", s.Digest)
}
