package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/anthonyjmartinez/connchk/internal/target"
)

// File is the on-disk target document.
type File struct {
	Targets []target.Target `yaml:"targets"`
}

// Load reads and validates a YAML target document. A document that parses
// but fails validation is rejected here, before anything gets dialed.
func Load(path string) ([]target.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read target file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse target file")
	}
	if len(f.Targets) == 0 {
		return nil, errors.Errorf("%s: no targets defined", path)
	}
	if err := target.ValidateAll(f.Targets); err != nil {
		return nil, errors.Wrap(err, "invalid target list")
	}
	return f.Targets, nil
}

// Config holds ambient settings shared by the CLI and the daemon.
type Config struct {
	Addr        string        // daemon bind address
	LogDir      string        // logs directory; empty disables file logging
	HistoryDB   string        // sqlite path; empty disables run history
	WebhookURL  string        // failure summary webhook; empty disables
	HTTPTimeout time.Duration // per HTTP probe
	TCPTimeout  time.Duration // per TCP dial
}

func FromEnv() Config {
	addr := os.Getenv("CONNCHK_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	return Config{
		Addr:        addr,
		LogDir:      os.Getenv("CONNCHK_LOG_DIR"),
		HistoryDB:   os.Getenv("CONNCHK_HISTORY_DB"),
		WebhookURL:  os.Getenv("CONNCHK_WEBHOOK_URL"),
		HTTPTimeout: envDuration("CONNCHK_HTTP_TIMEOUT_MS", 10*time.Second),
		TCPTimeout:  envDuration("CONNCHK_TCP_TIMEOUT_MS", 10*time.Second),
	}
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
