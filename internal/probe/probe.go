package probe

import (
	"context"

	"github.com/anthonyjmartinez/connchk/internal/target"
)

// Outcome is the unified result of a single probe.
//
// StatusCode is the HTTP status when a response was received; 0 means the
// probe never got one (TCP dial failure, DNS, TLS, timeout).
type Outcome struct {
	Success    bool
	LatencyMS  float64
	StatusCode int
	Message    string
}

// Checker performs a single probe against one target.
type Checker interface {
	Check(ctx context.Context, t target.Target) Outcome
}

// CheckResult ties an Outcome back to its target. Index is the target's
// position in the input list and restores presentation order after
// concurrent execution.
type CheckResult struct {
	Index      int     `json:"index"`
	Desc       string  `json:"desc"`
	Success    bool    `json:"success"`
	LatencyMS  float64 `json:"latency_ms"`
	StatusCode int     `json:"status_code,omitempty"`
	Message    string  `json:"message,omitempty"`
}
