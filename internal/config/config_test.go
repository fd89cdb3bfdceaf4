package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthonyjmartinez/connchk/internal/target"
)

const sampleDoc = `
targets:
  - kind: tcp
    desc: Postgres
    addr: db.internal:5432
  - kind: http
    desc: Website
    addr: https://example.com
  - kind: http
    desc: Login form
    addr: https://example.com/login
    custom:
      params:
        user: admin
        pass: hunter2
      ok: 302
  - kind: http
    desc: Validation endpoint
    addr: https://example.com/v1/items
    custom:
      json:
        name: widget
        count: 3
        nested:
          flag: true
      ok: 400
`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ParsesAllTargetShapes(t *testing.T) {
	targets, err := Load(writeDoc(t, sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 4 {
		t.Fatalf("want 4 targets, got %d", len(targets))
	}

	if targets[0].Kind != target.KindTCP || targets[0].Addr != "db.internal:5432" {
		t.Fatalf("tcp target wrong: %+v", targets[0])
	}
	if targets[1].Custom != nil {
		t.Fatalf("basic http target should have no custom block: %+v", targets[1])
	}
	if got := targets[2].Custom.Params["user"]; got != "admin" {
		t.Fatalf("form params wrong: %+v", targets[2].Custom)
	}
	if targets[2].Custom.OK != 302 {
		t.Fatalf("expected status wrong: %+v", targets[2].Custom)
	}

	body, ok := targets[3].Custom.JSON.(map[string]any)
	if !ok {
		t.Fatalf("json body should decode as a map, got %T", targets[3].Custom.JSON)
	}
	nested, ok := body["nested"].(map[string]any)
	if !ok || nested["flag"] != true {
		t.Fatalf("nested json structure lost: %v", body)
	}
}

func TestLoad_RejectsAmbiguousCustom(t *testing.T) {
	doc := `
targets:
  - kind: http
    desc: Broken
    addr: https://example.com
    custom:
      params:
        a: b
      json:
        a: b
      ok: 200
`
	if _, err := Load(writeDoc(t, doc)); err == nil {
		t.Fatal("want validation error for ambiguous custom block")
	}
}

func TestLoad_RejectsEmptyAndMissing(t *testing.T) {
	if _, err := Load(writeDoc(t, "targets: []")); err == nil {
		t.Fatal("want error for empty target list")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
	if _, err := Load(writeDoc(t, "targets: [\n")); err == nil {
		t.Fatal("want error for malformed yaml")
	}
}

func TestFromEnv_DefaultsAndOverrides(t *testing.T) {
	cfg := FromEnv()
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("default addr wrong: %q", cfg.Addr)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.TCPTimeout != 10*time.Second {
		t.Fatalf("default timeouts wrong: %+v", cfg)
	}

	t.Setenv("CONNCHK_ADDR", ":9999")
	t.Setenv("CONNCHK_HTTP_TIMEOUT_MS", "1500")
	t.Setenv("CONNCHK_TCP_TIMEOUT_MS", "bogus")
	t.Setenv("CONNCHK_HISTORY_DB", "runs.db")

	cfg = FromEnv()
	if cfg.Addr != ":9999" || cfg.HistoryDB != "runs.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 1500*time.Millisecond {
		t.Fatalf("http timeout override wrong: %v", cfg.HTTPTimeout)
	}
	if cfg.TCPTimeout != 10*time.Second {
		t.Fatalf("bad value should keep default: %v", cfg.TCPTimeout)
	}
}
