package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/anthonyjmartinez/connchk/internal/probe"
)

func TestLine_Success(t *testing.T) {
	got := Line(probe.CheckResult{Desc: "Prod DB", Success: true, LatencyMS: 12.4})
	want := "Successfully connected to Prod DB in 12ms"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLine_FailureWithMessage(t *testing.T) {
	got := Line(probe.CheckResult{Desc: "API", Success: false, StatusCode: 502, Message: "502 Bad Gateway: upstream down"})
	if !strings.Contains(got, "Failed to connect to API with:") || !strings.Contains(got, "502") {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestLine_FailureStatusOnly(t *testing.T) {
	got := Line(probe.CheckResult{Desc: "API", Success: false, StatusCode: 503})
	if got != "Failed to connect to API with: status 503" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestRender_OneLinePerResult(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []probe.CheckResult{
		{Index: 0, Desc: "a", Success: true, LatencyMS: 1},
		{Index: 1, Desc: "b", Success: false, Message: "refused"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Successfully") || !strings.HasPrefix(lines[1], "Failed") {
		t.Fatalf("lines out of order: %q", lines)
	}
}

func TestAllOK(t *testing.T) {
	ok := []probe.CheckResult{{Success: true}, {Success: true}}
	if !AllOK(ok) {
		t.Fatal("want true")
	}
	if AllOK(append(ok, probe.CheckResult{Success: false})) {
		t.Fatal("want false")
	}
	if !AllOK(nil) {
		t.Fatal("empty run has nothing failing")
	}
}
