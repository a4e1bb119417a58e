// Command uiprobe drives a search UI end to end and verifies its
// autocompletion hints and example queries against a test catalogue.
//
// Usage:
//
//	uiprobe -config uiprobe.yaml                 # run from a YAML config
//	uiprobe -url https://qlever.cs.uni-freiburg.de -testcases cases.json
//	uiprobe -fixture-addr :8188                  # serve the mock UI and exit on SIGINT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/probelab/uiprobe/catalogue"
	"github.com/probelab/uiprobe/fixture"
	"github.com/probelab/uiprobe/harness"
	"github.com/probelab/uiprobe/logging"
)

func main() {
	configPath := flag.String("config", "", "path to uiprobe.yaml config file")
	targetURL := flag.String("url", "", "URL of the UI under test")
	cataloguePath := flag.String("testcases", "", "path to the test catalogue JSON file")
	selectorsPath := flag.String("selectors", "", "path to a selector table YAML file")
	notHeadless := flag.Bool("not-headless", false, "run a visible browser window")
	remoteURL := flag.String("remote", "", "websocket URL of an existing Chrome instance")
	numRetries := flag.Int("num-retries", 0, "page load attempts before aborting")
	reportDB := flag.String("report-db", "", "persist reports to this SQLite file")
	reportJSON := flag.Bool("report-json", false, "emit reports as JSON lines on stdout")
	fixtureAddr := flag.String("fixture-addr", "", "serve the built-in mock UI on this address instead of running tests")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", false, "log JSON to stderr instead of the console format")
	flag.Parse()

	level := logging.ParseLevel(*logLevel)
	var logger *slog.Logger
	if *logJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	} else {
		logger = slog.New(logging.NewConsoleHandler(os.Stderr, level))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *fixtureAddr != "" {
		if err := serveFixture(ctx, logger, *fixtureAddr); err != nil {
			logger.Error("uiprobe: fixture server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("uiprobe: loading config failed", "path", *configPath, "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *targetURL, *cataloguePath, *selectorsPath, *remoteURL, *notHeadless, *numRetries, *reportDB, *reportJSON)

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("uiprobe: fatal", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*harness.Config, error) {
	if path == "" {
		return harness.Default(), nil
	}
	return harness.LoadConfigFile(path)
}

// applyFlags lets command-line flags override the file configuration.
func applyFlags(cfg *harness.Config, url, cataloguePath, selectorsPath, remote string, notHeadless bool, numRetries int, reportDB string, reportJSON bool) {
	if url != "" {
		cfg.Target.URL = url
	}
	if cataloguePath != "" {
		cfg.Target.CataloguePath = cataloguePath
	}
	if selectorsPath != "" {
		cfg.Target.SelectorsPath = selectorsPath
	}
	if remote != "" {
		cfg.Browser.Remote = remote
	}
	if notHeadless {
		cfg.Browser.Headful = true
	}
	if numRetries > 0 {
		cfg.Run.MaxRetries = numRetries
	}
	if reportDB != "" {
		cfg.Report.DBPath = reportDB
	}
	if reportJSON {
		cfg.Report.JSONLines = true
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *harness.Config) error {
	// A missing or malformed catalogue is not fatal: the run proceeds
	// with no test cases and completes trivially.
	cat, err := catalogue.Load(cfg.Target.CataloguePath)
	if err != nil {
		logger.Warn("uiprobe: loading test catalogue failed",
			"path", cfg.Target.CataloguePath, "error", err)
	}

	var sinks []harness.Sink
	if cfg.Report.JSONLines {
		sinks = append(sinks, harness.NewStdoutSink(nil))
	}
	if cfg.Report.DBPath != "" {
		store, err := harness.NewStoreSink(cfg.Report.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open report store: %w", err)
		}
		sinks = append(sinks, store)
	}

	runner, err := harness.New(ctx, cfg, logger, sinks...)
	if err != nil {
		return fmt.Errorf("start browser session: %w", err)
	}
	defer runner.Close()

	sum, err := runner.Run(ctx, cat)
	if err != nil {
		return err
	}

	logger.Info("uiprobe: run finished",
		"total", sum.Total, "passed", sum.Passed,
		"failed", sum.Failed, "skipped", sum.Skipped,
		"elapsed", sum.Elapsed.Round(time.Millisecond))
	return nil
}

func serveFixture(ctx context.Context, logger *slog.Logger, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           fixture.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("uiprobe: fixture serving", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
