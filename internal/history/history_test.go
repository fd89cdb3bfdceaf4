package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthonyjmartinez/connchk/internal/probe"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndReadBack(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	results := []probe.CheckResult{
		{Index: 0, Desc: "db", Success: true, LatencyMS: 3.2},
		{Index: 1, Desc: "site", Success: false, StatusCode: 503, Message: "503 Service Unavailable"},
		{Index: 2, Desc: "dead", Success: false, Message: "connection refused"},
	}
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	runID, err := s.SaveRun(ctx, started, results)
	if err != nil {
		t.Fatal(err)
	}
	if runID == 0 {
		t.Fatal("want a run id")
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("want 1 run, got %d", len(runs))
	}
	if runs[0].Total != 3 || runs[0].Failed != 2 {
		t.Fatalf("run summary wrong: %+v", runs[0])
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 rows, got %d", len(got))
	}
	for i, r := range got {
		if r.Index != i {
			t.Fatalf("rows out of order: %+v", got)
		}
	}
	if got[1].StatusCode != 503 || got[2].StatusCode != 0 {
		t.Fatalf("status round-trip wrong: %+v", got)
	}
	if !got[0].Success || got[1].Success {
		t.Fatalf("success flags wrong: %+v", got)
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.SaveRun(ctx, time.Now().UTC(), []probe.CheckResult{
			{Index: 0, Desc: "x", Success: true},
		}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit not applied, got %d", len(runs))
	}
	if runs[0].ID <= runs[1].ID {
		t.Fatalf("want newest first, got ids %d, %d", runs[0].ID, runs[1].ID)
	}
}
