package report

import (
	"fmt"
	"io"

	"github.com/anthonyjmartinez/connchk/internal/probe"
)

// Line renders one result. Failure details keep the observed HTTP status
// when there was one so a status mismatch reads differently from a dead
// connection.
func Line(r probe.CheckResult) string {
	if r.Success {
		return fmt.Sprintf("Successfully connected to %s in %.0fms", r.Desc, r.LatencyMS)
	}
	detail := r.Message
	if detail == "" && r.StatusCode != 0 {
		detail = fmt.Sprintf("status %d", r.StatusCode)
	}
	return fmt.Sprintf("Failed to connect to %s with: %s", r.Desc, detail)
}

// Render writes one line per result. Callers pass results already ordered by
// the runner; nothing is re-sorted or filtered here.
func Render(w io.Writer, results []probe.CheckResult) {
	for _, r := range results {
		fmt.Fprintln(w, Line(r))
	}
}

// AllOK reports whether every target succeeded. The CLI turns this into the
// process exit code.
func AllOK(results []probe.CheckResult) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
