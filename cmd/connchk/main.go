package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/anthonyjmartinez/connchk/internal/config"
	"github.com/anthonyjmartinez/connchk/internal/history"
	"github.com/anthonyjmartinez/connchk/internal/logging"
	"github.com/anthonyjmartinez/connchk/internal/notify"
	"github.com/anthonyjmartinez/connchk/internal/probe"
	"github.com/anthonyjmartinez/connchk/internal/report"
	"github.com/anthonyjmartinez/connchk/internal/runner"
)

const usage = "usage: connchk [-v] <targets.yaml>"

func main() {
	verbose := flag.Bool("v", false, "verbose logging to stderr")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.FromEnv()

	logger := zap.NewNop()
	if cfg.LogDir != "" || *verbose {
		dir := cfg.LogDir
		if dir == "" {
			dir = "logs"
		}
		l, err := logging.NewLogger(dir, *verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, "connchk:", err)
			os.Exit(2)
		}
		defer l.Sync()
		logger = l
	}

	targets, err := config.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "connchk:", err)
		os.Exit(2)
	}

	run := runner.New(logger,
		probe.NewTCPChecker(cfg.TCPTimeout),
		probe.NewHTTPChecker(cfg.HTTPTimeout),
	)

	started := time.Now().UTC()
	ctx := context.Background()
	results, err := run.Run(ctx, targets)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connchk:", err)
		os.Exit(2)
	}

	report.Render(os.Stdout, results)

	if cfg.HistoryDB != "" {
		if store, err := history.Open(cfg.HistoryDB); err != nil {
			logger.Warn("history_open_error", zap.Error(err))
		} else {
			if _, err := store.SaveRun(ctx, started, results); err != nil {
				logger.Warn("history_save_error", zap.Error(err))
			}
			store.Close()
		}
	}

	if !report.AllOK(results) {
		if wh := notify.NewWebhook(cfg.WebhookURL); wh != nil {
			title, text := notify.Summary(results)
			if err := wh.Send(ctx, title, text); err != nil {
				logger.Warn("webhook_error", zap.Error(err))
			}
		}
		os.Exit(1)
	}
}
