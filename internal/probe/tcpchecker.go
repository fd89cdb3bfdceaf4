package probe

import (
	"context"
	"net"
	"time"

	"github.com/anthonyjmartinez/connchk/internal/target"
)

// DefaultTimeout bounds a single probe: the TCP dial, or the whole HTTP
// request including body read.
const DefaultTimeout = 10 * time.Second

type TCPChecker struct {
	Timeout time.Duration
}

func NewTCPChecker(timeout time.Duration) *TCPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPChecker{Timeout: timeout}
}

// Check dials t.Addr and immediately closes the connection. No data is
// exchanged; reachability is the only question.
func (c *TCPChecker) Check(ctx context.Context, t target.Target) Outcome {
	start := time.Now()
	d := net.Dialer{Timeout: c.Timeout}
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	lat := time.Since(start).Seconds() * 1000
	if err != nil {
		return Outcome{Success: false, LatencyMS: lat, Message: err.Error()}
	}
	_ = conn.Close()
	return Outcome{Success: true, LatencyMS: lat}
}
