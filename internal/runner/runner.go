package runner

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/anthonyjmartinez/connchk/internal/probe"
	"github.com/anthonyjmartinez/connchk/internal/target"
)

// Runner fans a target list out to the protocol probers. Every target runs
// in its own goroutine; a probe failing (or panicking) only fails its own
// result.
type Runner struct {
	Logger *zap.Logger
	TCP    probe.Checker
	HTTP   probe.Checker
}

func New(logger *zap.Logger, tcp, httpc probe.Checker) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Logger: logger, TCP: tcp, HTTP: httpc}
}

// Run validates targets, probes them all concurrently, and returns one
// CheckResult per target in input order. A validation error aborts the run
// before any network activity; probe errors never do.
func (r *Runner) Run(ctx context.Context, targets []target.Target) ([]probe.CheckResult, error) {
	if err := target.ValidateAll(targets); err != nil {
		return nil, fmt.Errorf("invalid target list: %w", err)
	}

	out := make(chan probe.CheckResult, len(targets))
	var wg sync.WaitGroup

	for i, tgt := range targets {
		wg.Add(1)
		go func(idx int, t target.Target) {
			defer wg.Done()
			out <- r.probeOne(ctx, idx, t)
		}(i, tgt)
	}
	wg.Wait()
	close(out)

	results := make([]probe.CheckResult, 0, len(targets))
	for res := range out {
		results = append(results, res)
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	return results, nil
}

func (r *Runner) probeOne(ctx context.Context, idx int, t target.Target) (res probe.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("probe_panic",
				zap.String("desc", t.Desc),
				zap.Any("panic", rec),
			)
			res = probe.CheckResult{
				Index:   idx,
				Desc:    t.Desc,
				Success: false,
				Message: fmt.Sprintf("probe panic: %v", rec),
			}
		}
	}()

	var chk probe.Checker
	switch t.Kind {
	case target.KindTCP:
		chk = r.TCP
	case target.KindHTTP:
		chk = r.HTTP
	default:
		// ValidateAll already rejected these; keep the result well formed
		// regardless.
		return probe.CheckResult{
			Index:   idx,
			Desc:    t.Desc,
			Success: false,
			Message: fmt.Sprintf("unknown kind %q", t.Kind),
		}
	}

	out := chk.Check(ctx, t)
	r.Logger.Debug("probe_done",
		zap.String("desc", t.Desc),
		zap.String("kind", string(t.Kind)),
		zap.Bool("success", out.Success),
		zap.Int("status", out.StatusCode),
		zap.Float64("latency_ms", out.LatencyMS),
		zap.String("message", out.Message),
	)
	return probe.CheckResult{
		Index:      idx,
		Desc:       t.Desc,
		Success:    out.Success,
		LatencyMS:  out.LatencyMS,
		StatusCode: out.StatusCode,
		Message:    out.Message,
	}
}
