package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthonyjmartinez/connchk/internal/target"
)

// maxDetailBytes caps how much of a response body ends up in a failure
// message.
const maxDetailBytes = 2048

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

// Check probes an http target. Without a custom block it is a plain GET that
// succeeds only on 200. With one it POSTs the configured form or JSON body
// and succeeds only on the configured status.
func (h *HTTPChecker) Check(ctx context.Context, t target.Target) Outcome {
	if t.Custom != nil {
		return h.checkCustom(ctx, t)
	}
	return h.checkBasic(ctx, t)
}

func (h *HTTPChecker) checkBasic(ctx context.Context, t target.Target) Outcome {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.Addr, nil)
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}
	resp, err := h.Client.Do(req)
	lat := time.Since(start).Seconds() * 1000
	if err != nil {
		return Outcome{Success: false, LatencyMS: lat, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return Outcome{Success: true, LatencyMS: lat, StatusCode: resp.StatusCode}
	}
	return Outcome{
		Success:    false,
		LatencyMS:  lat,
		StatusCode: resp.StatusCode,
		Message:    statusDetail(resp),
	}
}

func (h *HTTPChecker) checkCustom(ctx context.Context, t target.Target) Outcome {
	opts := t.Custom

	var body io.Reader
	contentType := ""
	switch {
	case len(opts.Params) > 0 && opts.JSON == nil:
		form := url.Values{}
		for k, v := range opts.Params {
			form.Set(k, v)
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case opts.JSON != nil && len(opts.Params) == 0:
		b, err := json.Marshal(opts.JSON)
		if err != nil {
			return Outcome{Success: false, Message: fmt.Sprintf("encode json body: %v", err)}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	default:
		// Validation happens upstream; refuse to guess if handed an
		// ambiguous descriptor anyway.
		return Outcome{Success: false, Message: "custom check: exactly one of params or json is required"}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Addr, body)
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.Client.Do(req)
	lat := time.Since(start).Seconds() * 1000
	if err != nil {
		return Outcome{Success: false, LatencyMS: lat, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == opts.OK {
		return Outcome{Success: true, LatencyMS: lat, StatusCode: resp.StatusCode}
	}
	return Outcome{
		Success:    false,
		LatencyMS:  lat,
		StatusCode: resp.StatusCode,
		Message:    statusDetail(resp),
	}
}

func statusDetail(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
	detail := strings.TrimSpace(string(b))
	if detail == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, detail)
}
