package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/anthonyjmartinez/connchk/internal/config"
	"github.com/anthonyjmartinez/connchk/internal/history"
	"github.com/anthonyjmartinez/connchk/internal/httpapi"
	"github.com/anthonyjmartinez/connchk/internal/logging"
	"github.com/anthonyjmartinez/connchk/internal/probe"
	"github.com/anthonyjmartinez/connchk/internal/runner"
)

func main() {
	cfg := config.FromEnv()

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	logger, err := logging.NewLogger(logDir, false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store httpapi.History
	if cfg.HistoryDB != "" {
		s, err := history.Open(cfg.HistoryDB)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		store = s
	}

	run := runner.New(logger,
		probe.NewTCPChecker(cfg.TCPTimeout),
		probe.NewHTTPChecker(cfg.HTTPTimeout),
	)
	api := httpapi.NewServer(logger, run, store)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
