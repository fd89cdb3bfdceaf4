package notify

import (
	"context"
	"fmt"

	"github.com/anthonyjmartinez/connchk/internal/probe"
	"github.com/anthonyjmartinez/connchk/internal/report"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Summary builds the message sent when a run contains failures: a count line
// followed by the failing targets' report lines.
func Summary(results []probe.CheckResult) (title, text string) {
	failed := 0
	var lines string
	for _, r := range results {
		if r.Success {
			continue
		}
		failed++
		lines += report.Line(r) + "\n"
	}
	title = fmt.Sprintf("connchk: %d of %d targets failed", failed, len(results))
	return title, lines
}
