package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return s
}

func TestRecordRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, "2 + 2", 4, ""); err != nil {
		t.Fatalf("recording success: %v", err)
	}
	if err := s.Record(ctx, "1/0", 0, "division by zero"); err != nil {
		t.Fatalf("recording failure: %v", err)
	}

	recs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("querying recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}
	// Newest first.
	if recs[0].Expr != "1/0" || recs[0].Err != "division by zero" {
		t.Errorf("newest record wrong: %+v", recs[0])
	}
	if recs[1].Expr != "2 + 2" || recs[1].Value != 4 || recs[1].Err != "" {
		t.Errorf("oldest record wrong: %+v", recs[1])
	}
	for i, r := range recs {
		if r.At.IsZero() || time.Since(r.At) > time.Minute {
			t.Errorf("record %d has implausible time %v", i, r.At)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, "mem", float64(i), ""); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}
	recs, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("querying recent: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	if recs[0].Value != 4 {
		t.Errorf("newest record value %g, want 4", recs[0].Value)
	}
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	recs, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("querying recent on empty store: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("empty store gave %d records", len(recs))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("opening with empty path succeeded")
	}
}
